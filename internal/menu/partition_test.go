package menu

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func newTestPartitioner(t *testing.T) Partitioner {
	p, err := NewPartitioner(DefaultPartitionConfig())
	require.NoError(t, err)
	return p
}

func TestGuess(t *testing.T) {
	p := newTestPartitioner(t)

	table := []struct {
		section  string
		expected Bucket
	}{
		{section: "Grill Lunch", expected: Lunch},
		{section: "BREAKFAST Station", expected: Breakfast},
		{section: "Late Night Specials", expected: LateNight},
		{section: "LateNight Grill", expected: LateNight},
		{section: "Late Night Breakfast", expected: LateNight},
		{section: "Dinner Entrees", expected: Dinner},
		{section: "Salad Bar", expected: Dinner},
		{section: "Lunchbox", expected: Dinner},
	}

	for _, row := range table {
		require.Equal(t, row.expected, p.Guess(row.section), row.section)
	}
}

func TestAssignPizzaFanOut(t *testing.T) {
	p := newTestPartitioner(t)

	weekday := p.Assign("Campus Pizza", "Cheese Pizza", false)
	require.Equal(t, []Assignment{
		{Bucket: Lunch, Section: "Campus Pizza", Item: "Cheese Pizza"},
		{Bucket: Dinner, Section: "Campus Pizza", Item: "Cheese Pizza"},
		{Bucket: LateNight, Section: "Campus Pizza", Item: "Cheese Pizza"},
	}, weekday)

	weekend := p.Assign("Pasta Bar", "Penne", true)
	require.Equal(t, []Assignment{
		{Bucket: Brunch, Section: "Pasta Bar", Item: "Penne"},
		{Bucket: Dinner, Section: "Pasta Bar", Item: "Penne"},
	}, weekend)

	require.Len(t, p.Assign("Pizzeria", "Calzone", false), 1)
}

func TestPlanWeekday(t *testing.T) {
	p := newTestPartitioner(t)

	plan := p.Plan([]Placement{
		{Section: "Grill Lunch", Item: "Burger"},
		{Section: "Breakfast", Item: "Eggs"},
		{Section: "Campus Pizza", Item: "Cheese Pizza"},
		{Section: "Late Night Specials", Item: "Grilled Chicken"},
		{Section: "Grill Lunch", Item: "Burger"},
	}, false)

	require.Equal(t, []Bucket{Breakfast, Lunch, Dinner, LateNight}, plan.Buckets())
	if diff := cmp.Diff([]Block{
		{Section: "Campus Pizza", Items: []string{"Cheese Pizza"}},
		{Section: "Grill Lunch", Items: []string{"Burger"}},
	}, plan.Get(Lunch)); diff != "" {
		t.Fatal(diff)
	}
	if diff := cmp.Diff([]Block{
		{Section: "Campus Pizza", Items: []string{"Cheese Pizza"}},
		{Section: "Late Night Specials", Items: []string{"Grilled Chicken"}},
	}, plan.Get(LateNight)); diff != "" {
		t.Fatal(diff)
	}
	require.Equal(t, []Block{{Section: "Breakfast", Items: []string{"Eggs"}}}, plan.Get(Breakfast))
	require.Equal(t, 6, plan.ItemCount())
}

func TestPlanWeekend(t *testing.T) {
	p := newTestPartitioner(t)

	plan := p.Plan([]Placement{
		{Section: "Late Night Specials", Item: "Grilled Chicken"},
		{Section: "Breakfast", Item: "Eggs"},
		{Section: "Grill Lunch", Item: "Burger"},
		{Section: "Pasta Bar", Item: "Penne"},
	}, true)

	require.Equal(t, []Bucket{Brunch, Dinner}, plan.Buckets())
	if diff := cmp.Diff([]Block{
		{Section: "Grill Dinner Specials", Items: []string{"Grilled Chicken"}},
		{Section: "Pasta Bar", Items: []string{"Penne"}},
	}, plan.Get(Dinner)); diff != "" {
		t.Fatal(diff)
	}
	if diff := cmp.Diff([]Block{
		{Section: "Breakfast", Items: []string{"Eggs"}},
		{Section: "Grill Lunch", Items: []string{"Burger"}},
		{Section: "Pasta Bar", Items: []string{"Penne"}},
	}, plan.Get(Brunch)); diff != "" {
		t.Fatal(diff)
	}
	require.Nil(t, plan.Get(LateNight))
}

func TestPlanWeekendLateNightRename(t *testing.T) {
	p := newTestPartitioner(t)

	plan := p.Plan([]Placement{
		{Section: "Late Night Specials", Item: "Grilled Chicken"},
	}, true)

	require.Equal(t, []Block{
		{Section: "Grill Dinner Specials", Items: []string{"Grilled Chicken"}},
	}, plan.Get(Dinner))
	require.Equal(t, []Block{}, plan.Get(Brunch))
}

func TestNewPartitionerRejectsBadPattern(t *testing.T) {
	config := DefaultPartitionConfig()
	config.AllDay = append(config.AllDay, "(")
	_, err := NewPartitioner(config)
	require.Error(t, err)
}

func TestMealPlanJSON(t *testing.T) {
	plan := NewMealPlan(Brunch, Dinner)
	plan.Set(Dinner, []Block{{Section: "Mac & Cheese", Items: []string{"Crème brûlée"}}})

	var buff bytes.Buffer
	enc := json.NewEncoder(&buff)
	enc.SetEscapeHTML(false)
	require.NoError(t, enc.Encode(plan))
	require.Equal(
		t,
		`{"brunch":[],"dinner":[{"section":"Mac & Cheese","items":["Crème brûlée"]}]}`+"\n",
		buff.String(),
	)
	data := buff.Bytes()

	var decoded MealPlan
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, []Bucket{Brunch, Dinner}, decoded.Buckets())
	require.Equal(t, plan.Get(Dinner), decoded.Get(Dinner))
}
