package assert

import "fmt"

// NotNil panics if `value` is nil, `name` identifies the value in the panic.
func NotNil(name string, value any) {
	if value == nil {
		panic(fmt.Sprintf("%s must not be nil", name))
	}
}

// NotEmpty panics if `str` is empty.
func NotEmpty(name, str string) {
	if str == "" {
		panic(fmt.Sprintf("%s must not be empty", name))
	}
}
