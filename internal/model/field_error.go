package model

// FieldError flags a draft field mentioned in a rejection detail.
type FieldError struct {
    Field   string `json:"field"`
    Message string `json:"message"`
    Step    int    `json:"step"`
}
