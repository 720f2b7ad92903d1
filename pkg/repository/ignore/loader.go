package ignore

// IgnoreFileName is the conventional name of a per-directory ignore file.
const IgnoreFileName = ".sourceignore"

// BuiltinScope returns the built-in default ignore rules as the outermost
// Stack layer. RootStack always includes it, beneath any system or user layer.
func BuiltinScope() *Scope {
	return NewScope("", "builtin", []byte(DefaultIgnore))
}

// RootStack assembles the two global ignore layers (system then user, user
// being innermost of the two) beneath the repository's own .sourceignore
// chain. Either byte slice may be nil to omit that layer. The builtin
// defaults are always present as the outermost layer.
func RootStack(systemIgnore, userIgnore []byte) *Stack {
	stack := NewStack(BuiltinScope())
	if len(systemIgnore) > 0 {
		stack = stack.Push(NewScope("", "system", systemIgnore))
	}
	if len(userIgnore) > 0 {
		stack = stack.Push(NewScope("", "user", userIgnore))
	}
	return stack
}
