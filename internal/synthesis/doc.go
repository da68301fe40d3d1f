// Package synthesis orchestrates one video synthesis request end to end:
// fetch remote inputs into a session directory, probe the source video, mix
// audio tracks, mux the result, and publish the durable artifact.
//
// Stages run strictly in sequence; independent requests run concurrently,
// isolated by their sessions. Every stage failure is tagged with its marker
// from the services package and wrapped in services.ErrSynthesis before it
// reaches the caller, after the session's cleanup has run.
package synthesis
