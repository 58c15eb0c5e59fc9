package setting

import "errors"

var (
	ErrSettingNotFound  = errors.New("setting not found")
	ErrInvalidValueType = errors.New("invalid setting value")
)
