package invoke

// Invoker hands one piece of formatted log text to a bound target.
// Every error returned is a *DeliveryError.
type Invoker interface {
	Append(text string) error
}

var (
	_ Invoker = (*CachedInvoker)(nil)
	_ Invoker = (*ReacquireInvoker)(nil)
)
