// Package intasend is a minimal client for the IntaSend payments API. It
// implements service.PaymentProvider with the M-Pesa STK push collection
// endpoint.
package intasend
