package utils

// PanicIfNeeded aborts the request pipeline; the recovery middleware turns
// the panic back into a structured error response.
func PanicIfNeeded(err any) {
	if err != nil {
		panic(err)
	}
}
