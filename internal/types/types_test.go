package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID(t *testing.T) {
	t.Run("new_ids_are_unique_and_valid", func(t *testing.T) {
		a, b := NewID(), NewID()
		assert.NotEqual(t, a, b)
		assert.NoError(t, a.Validate())
		assert.False(t, a.IsZero())
	})

	t.Run("parse_round_trip", func(t *testing.T) {
		id := NewID()
		parsed, err := ParseID(id.String())
		require.NoError(t, err)
		assert.Equal(t, id, parsed)
	})

	t.Run("invalid_inputs_rejected", func(t *testing.T) {
		_, err := ParseID("")
		assert.Error(t, err)
		_, err = ParseID("not-a-uuid")
		assert.Error(t, err)
		assert.Error(t, ID("not-a-uuid").Validate())
	})
}

type codedError struct {
	code ErrorCode
}

func (e *codedError) Error() string   { return string(e.code) }
func (e *codedError) Code() ErrorCode { return e.code }

func TestCodeForError(t *testing.T) {
	t.Run("nil_error_is_success", func(t *testing.T) {
		assert.Equal(t, SUCCESS, CodeForError(nil))
	})

	t.Run("invalid_group_name_is_preserved", func(t *testing.T) {
		err := &codedError{code: INVALID_GROUP_NAME}
		assert.Equal(t, INVALID_GROUP_NAME, CodeForError(err))
	})

	t.Run("wrapped_coder_is_found", func(t *testing.T) {
		err := errors.Join(errors.New("outer"), &codedError{code: INVALID_GROUP_NAME})
		assert.Equal(t, INVALID_GROUP_NAME, CodeForError(err))
	})

	t.Run("other_failures_collapse_to_failure", func(t *testing.T) {
		assert.Equal(t, FAILURE, CodeForError(errors.New("boom")))
		assert.Equal(t, FAILURE, CodeForError(&codedError{code: CONSTRAINT_REJECTED}))
	})
}

func TestConstraintsEmpty(t *testing.T) {
	assert.True(t, Constraints{}.Empty())
	assert.False(t, Constraints{
		JointConstraints: []JointConstraint{{JointName: "j1"}},
	}.Empty())
}

func TestWorkspaceParametersIsZero(t *testing.T) {
	assert.True(t, WorkspaceParameters{}.IsZero())
	assert.False(t, WorkspaceParameters{MaxCorner: [3]float64{1, 1, 1}}.IsZero())
}
