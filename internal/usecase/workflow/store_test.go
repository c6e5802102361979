package workflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	usecaseErrors "github.com/johnquangdev/meetscribe/internal/usecase/errors"
)

func TestSessionStore(t *testing.T) {
	st := NewSessionStore(time.Hour)

	s := st.Create()
	require.NotEmpty(t, s.ID())
	assert.Equal(t, 1, st.Count())

	got, err := st.Get(s.ID())
	require.NoError(t, err)
	assert.Same(t, s, got)

	require.NoError(t, st.Delete(s.ID()))
	_, err = st.Get(s.ID())
	assert.ErrorIs(t, err, usecaseErrors.ErrSessionNotFound)
	assert.ErrorIs(t, st.Delete(s.ID()), usecaseErrors.ErrSessionNotFound)
}

func TestSessionStore_Expiry(t *testing.T) {
	st := NewSessionStore(20 * time.Millisecond)
	s := st.Create()

	time.Sleep(50 * time.Millisecond)

	_, err := st.Get(s.ID())
	assert.ErrorIs(t, err, usecaseErrors.ErrSessionNotFound)
}

func TestStep_String(t *testing.T) {
	assert.Equal(t, "upload", StepUpload.String())
	assert.Equal(t, "done", StepDone.String())
	assert.Equal(t, "unknown", Step(9).String())
}
