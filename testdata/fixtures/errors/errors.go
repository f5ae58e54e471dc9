// Package fixture deliberately does not compile. Each function below carries one defect that a
// diagnostics tool is expected to report; see expect.yaml.
package fixture

// undefinedVariable refers to a name that is never declared.
func undefinedVariable() int {
	return undefinedVar
}

// typeError assigns a string literal to an int.
func typeError() int {
	var x int = "not an int"
	return x
}

// missingReturn has a path that falls off the end.
func missingReturn(ok bool) int {
	x := 42
	if ok {
		return x
	}
}

func twoArgs(a, b int) int {
	return a + b
}

// argumentError calls twoArgs with one argument.
func argumentError() int {
	return twoArgs(1)
}

// typeConversion initializes a pointer from an integer literal.
func typeConversion() *int {
	var ptr *int = 42
	return ptr
}
