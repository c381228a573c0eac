package settings

import "errors"

var ErrInvalidSettings = errors.New("invalid work settings")
