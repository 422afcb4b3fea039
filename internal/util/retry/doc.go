// Package retry provides exponential backoff retry logic for transient failures.
//
// [WithExponentialBackoff] retries an operation with configurable max attempts,
// initial delay, and maximum delay. [Until] polls a condition on the same
// schedule; it is used to wait for Route 53 changes to reach INSYNC.
package retry
