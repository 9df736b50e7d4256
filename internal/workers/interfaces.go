// Package workers runs the background jobs of the registry client.
package workers

import "context"

// Worker is a background job. Start returns at once; the job runs until
// Stop is called or ctx is done.
type Worker interface {
	Start(ctx context.Context)
	Stop()
}
