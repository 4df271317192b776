// Package mocks provides shared test doubles for the social network's
// collaborators: the JWT service, the password verifier, the user and
// notification stores, the event emitter and the image renderer.
//
// Most mocks use function fields with recorded calls; leave a field nil to
// get the default behavior documented on the mock:
//
//	emitter := &mocks.MockEventEmitter{}
//	renderer := &mocks.MockImageRenderer{
//	    RenderFn: func(ctx context.Context, path string, w io.Writer) error {
//	        return os.ErrNotExist
//	    },
//	}
//
// TestifyMockUserStore is built on testify/mock for tests that assert on
// call arguments and order.
package mocks
