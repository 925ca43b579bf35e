package planner

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walking-machine/moveit2/internal/statespace"
)

func TestRegistry(t *testing.T) {
	t.Run("select_returns_registered_allocator", func(t *testing.T) {
		r := NewRegistry(slog.Default())
		called := false
		r.Register("geometric::RRT", func(si *statespace.SpaceInformation, name string, config map[string]string) (Planner, error) {
			called = true
			return nil, nil
		})

		alloc := r.Select("geometric::RRT")
		require.NotNil(t, alloc)
		_, err := alloc(nil, "", nil)
		require.NoError(t, err)
		assert.True(t, called)
	})

	t.Run("unknown_planner_yields_nil_allocator", func(t *testing.T) {
		r := NewRegistry(slog.Default())
		assert.Nil(t, r.Select("geometric::DoesNotExist"))
	})

	t.Run("register_replaces_previous_allocator", func(t *testing.T) {
		r := NewRegistry(slog.Default())
		r.Register("geometric::RRT", func(*statespace.SpaceInformation, string, map[string]string) (Planner, error) {
			t.Fatal("replaced allocator must not be called")
			return nil, nil
		})
		r.Register("geometric::RRT", func(*statespace.SpaceInformation, string, map[string]string) (Planner, error) {
			return nil, nil
		})

		alloc := r.Select("geometric::RRT")
		require.NotNil(t, alloc)
		_, err := alloc(nil, "", nil)
		assert.NoError(t, err)
	})

	t.Run("known_lists_ids_sorted", func(t *testing.T) {
		r := NewRegistry(slog.Default())
		r.Register("geometric::RRT", nil)
		r.Register("geometric::EST", nil)
		assert.Equal(t, []string{"geometric::EST", "geometric::RRT"}, r.Known())
	})
}

func TestDefaultAlgorithms(t *testing.T) {
	algorithms := DefaultAlgorithms()
	byID := make(map[string]Algorithm, len(algorithms))
	for _, alg := range algorithms {
		byID[alg.ID()] = alg
	}

	t.Run("prm_family_supports_persistent_reconstruction", func(t *testing.T) {
		for _, id := range []string{PRM, PRMstar, LazyPRM, LazyPRMstar} {
			alg, ok := byID[id]
			require.True(t, ok, id)
			_, persistent := alg.(PersistentAlgorithm)
			assert.True(t, persistent, id)
		}
	})

	t.Run("tree_planners_do_not", func(t *testing.T) {
		for _, id := range []string{RRT, RRTConnect, EST, KPIECE, SPARS} {
			alg, ok := byID[id]
			require.True(t, ok, id)
			_, persistent := alg.(PersistentAlgorithm)
			assert.False(t, persistent, id)
		}
	})
}
