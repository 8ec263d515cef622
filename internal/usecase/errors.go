package usecase

import "errors"

// ErrValidation — входные данные отвергнуты до обращения к Store.
var ErrValidation = errors.New("validation failed")
