// Package observability instruments Esplora calls with OpenTelemetry.
//
// Every client call opens one span named "esplora.<operation>" and records
// the request counter, duration histogram and error counter. Providers
// default to the otel globals, so the client emits nothing until the
// application installs an SDK.
//
//	in, err := observability.NewInstruments(tp, mp)
//	ctx, op := in.Begin(ctx, "tx_info", "GET", "/tx/...")
//	defer op.End(err)
package observability
