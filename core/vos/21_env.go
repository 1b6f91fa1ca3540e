package vos

// VEnv represents the shell's variable environment.
type VEnv interface {
	// Unsetenv removes a single variable, declared or not.
	Unsetenv(key string) error

	// Setenv sets the value of the variable named by the key, keeping its
	// position if it already exists.
	Setenv(key, value string) error

	// Declare records the key without a value. An existing value is kept.
	Declare(key string) error

	// LookupEnv retrieves the value of the variable named by the key.
	// If the variable has a value (which may be empty) the value is returned
	// and the boolean is true. Variables that are missing or declared without
	// a value return false.
	LookupEnv(key string) (string, bool)

	// Getenv retrieves the value of the variable named by the key.
	// It returns the value, which will be empty if the variable has no value.
	// To distinguish between an empty value and an unset value, use LookupEnv.
	Getenv(key string) string

	// Environ returns a copy of strings representing the variables that have
	// a value, in the form "key=value" and in insertion order.
	Environ() []string

	// Clearenv deletes all variables.
	Clearenv()
}

// EnvironFetcher is anything that can list "key=value" pairs.
type EnvironFetcher interface {
	// Environ returns a copy of strings representing the environment, in the
	// form "key=value".
	Environ() []string
}

// EnvList adapts a plain slice of "key=value" strings to an EnvironFetcher.
type EnvList []string

// Environ implements EnvironFetcher.Environ.
func (e EnvList) Environ() []string {
	return append([]string(nil), e...)
}
