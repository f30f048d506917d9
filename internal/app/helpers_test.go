package app

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/relabs-tech/sphere_trajectory/internal/imu"
	"github.com/relabs-tech/sphere_trajectory/internal/store"
	"github.com/relabs-tech/sphere_trajectory/internal/trajectory"
)

const sweepRadius = 0.5

// sweepRecording is one second of constant angular acceleration from rest,
// enough for a single radius window.
func sweepRecording() *imu.Recording {
	return imu.MockRecording(sweepMockParams())
}

func sweepMockParams() imu.MockParams {
	p := imu.DefaultMockParams()
	p.Sweep = imu.ConstantAccelerationSweep(2)
	p.Samples = 101
	p.Radius = sweepRadius
	return p
}

func testParams() trajectory.Params {
	p := trajectory.DefaultParams()
	p.FloatingWindow = 11
	return p
}

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func writeRecording(t *testing.T, dir, name string, rec *imu.Recording) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, imu.SaveRecording(path, rec))
	return path
}

type published struct {
	topic   string
	payload []byte
}

type fakePublisher struct {
	mu       sync.Mutex
	messages []published
	err      error
	closed   bool
}

func (f *fakePublisher) Publish(topic string, payload []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, published{topic, payload})
	return nil
}

func (f *fakePublisher) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}

func (f *fakePublisher) sent() []published {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]published(nil), f.messages...)
}
