package common

import "errors"

// ErrNotFound общая ошибка отсутствия записи для всех репозиториев.
var ErrNotFound = errors.New("entity not found")
