// Package signal implements a process-local, synchronous signal registry.
//
// Receivers are registered against a signal name with On or Once and are
// invoked, in registration order, every time the signal is emitted:
//
//	r, err := signal.On("deploy", func(args []interface{}, kw signal.Kwargs) error {
//		fmt.Println("deploying", args, kw)
//		return nil
//	})
//	...
//	err = signal.EmitWith("deploy", []interface{}{"web"}, signal.Kwargs{"env": "prod"})
//	signal.Disconnect("deploy", r)
//
// Each registration returns a *Receiver handle. The handle is the identity
// used by Disconnect; registering the same function twice yields two
// handles, and both are invoked on emit.
//
// Emit runs every receiver on the calling goroutine. The first receiver
// error is returned to the caller unchanged and the remaining receivers of
// that emit are skipped. Panics are not recovered.
//
// The package level functions operate on Default, a registry keyed by
// string that lives for the whole process. Code needing isolation, such as
// tests, can construct its own registry with New.
package signal
