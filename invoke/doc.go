// Package invoke binds log output to funcs and methods chosen by name at
// configuration time.
//
// A Registry maps class names to package-level funcs that act as the class's
// static members. Append methods take a single string (or a named string
// type) and return nothing or an error. Instance factories take nothing and
// return a value, optionally followed by an error. Names are matched exactly
// first and then in their exported spelling, so "append" finds "Append".
//
// Two Invoker implementations exist:
//
//   - CachedInvoker holds one resolved method and, for instance methods, the
//     instance it is called on. Class-level funcs run without an instance.
//   - ReacquireInvoker calls a factory on every Append and resolves the
//     append method against whatever value the factory returned.
//
// Configuration problems are reported as *ConfigurationError. Anything that
// goes wrong while delivering, including a panic inside the target, is
// reported as *DeliveryError.
package invoke
