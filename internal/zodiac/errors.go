package zodiac

import (
	"errors"
	"fmt"
)

// ErrInvalidDOB：出生日期不是 YYYY-MM-DD 三段整数
var ErrInvalidDOB = errors.New("invalid date of birth")

// InputError：输入校验失败，携带原始日期串与原因
type InputError struct {
	DOB string
	Err error
}

func (e *InputError) Error() string {
	if e == nil {
		return "<nil>"
	}
	base := fmt.Sprintf("dob %q: %s", e.DOB, ErrInvalidDOB)
	if e.Err != nil {
		base += ": " + e.Err.Error()
	}
	return base
}

func (e *InputError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is：使 errors.Is(err, ErrInvalidDOB) 对所有 InputError 成立
func (e *InputError) Is(target error) bool { return target == ErrInvalidDOB }

// IsInputError：判断错误链中是否包含 InputError
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}
