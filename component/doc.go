// Package component defines the lifecycle interface long-lived nap
// clients implement, and a registry that starts and stops a set of them
// in order.
//
// A program talking to several APIs registers one component per API,
// starts them together at boot and closes them in reverse order on
// shutdown.
package component
