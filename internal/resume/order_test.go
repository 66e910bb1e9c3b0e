package resume

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeOrder(t *testing.T) {
	t.Run("empty input falls back to default", func(t *testing.T) {
		assert.Equal(t, DefaultOrder(), NormalizeOrder(nil))
	})

	t.Run("unknown keys dropped, missing keys appended", func(t *testing.T) {
		got := NormalizeOrder([]Section{SectionSkills, "banner", SectionObjective})
		require.Len(t, got, len(DefaultOrder()))
		assert.Equal(t, SectionSkills, got[0])
		assert.Equal(t, SectionObjective, got[1])
		assert.ElementsMatch(t, DefaultOrder(), got)
	})

	t.Run("duplicates collapsed", func(t *testing.T) {
		got := NormalizeOrder([]Section{SectionSkills, SectionSkills, SectionSkills})
		assert.ElementsMatch(t, DefaultOrder(), got)
	})
}

func TestMoveUpDown_EdgeNoOps(t *testing.T) {
	order := DefaultOrder()

	assert.Equal(t, order, MoveUp(order, 0), "moving the first element up is a no-op")
	assert.Equal(t, order, MoveDown(order, len(order)-1), "moving the last element down is a no-op")
	assert.Equal(t, order, MoveUp(order, -1))
	assert.Equal(t, order, MoveDown(order, len(order)))
}

func TestMoveUpDown_Swap(t *testing.T) {
	order := []Section{SectionObjective, SectionSkills, SectionProjects}

	up := MoveUp(order, 2)
	assert.Equal(t, []Section{SectionObjective, SectionProjects, SectionSkills}, up)

	down := MoveDown(order, 0)
	assert.Equal(t, []Section{SectionSkills, SectionObjective, SectionProjects}, down)

	// Inputs are never mutated.
	assert.Equal(t, []Section{SectionObjective, SectionSkills, SectionProjects}, order)
}

func TestMoveTo_DragSemantics(t *testing.T) {
	order := []Section{SectionObjective, SectionSkills, SectionProjects, SectionEducation}

	got := MoveTo(order, 0, 2)
	assert.Equal(t, []Section{SectionSkills, SectionProjects, SectionObjective, SectionEducation}, got)

	got = MoveTo(order, 3, 0)
	assert.Equal(t, []Section{SectionEducation, SectionObjective, SectionSkills, SectionProjects}, got)

	assert.Equal(t, order, MoveTo(order, 1, 1))
	assert.Equal(t, order, MoveTo(order, -1, 2))
	assert.Equal(t, order, MoveTo(order, 1, 9))
}

func TestMoveTo_ConvergesWithSingleStepSwaps(t *testing.T) {
	order := DefaultOrder()

	// Dragging an element down three slots equals three single-step moves.
	dragged := MoveTo(order, 1, 4)
	stepped := MoveDown(MoveDown(MoveDown(order, 1), 2), 3)
	assert.Equal(t, stepped, dragged)

	// And dragging back up reverses it.
	back := MoveTo(dragged, 4, 1)
	assert.Equal(t, order, back)
}

func TestMoves_PermutationClosure(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	order := DefaultOrder()

	for i := 0; i < 500; i++ {
		switch rng.Intn(3) {
		case 0:
			order = MoveUp(order, rng.Intn(len(order)))
		case 1:
			order = MoveDown(order, rng.Intn(len(order)))
		default:
			order = MoveTo(order, rng.Intn(len(order)), rng.Intn(len(order)))
		}
		require.Len(t, order, len(DefaultOrder()), "no loss after move %d", i)
		require.ElementsMatch(t, DefaultOrder(), order, "no duplication after move %d", i)
	}
}
