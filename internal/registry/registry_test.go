package registry

import (
	"os"
	"path/filepath"
	"testing"

	"fjacquet/paycheck-planner/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_OrderIsStable(t *testing.T) {
	r := Default()

	first := r.All()
	second := r.All()
	require.Equal(t, first, second)
	require.Len(t, first, len(DefaultCategories()))

	assert.Equal(t, models.CategoryHousing, first[0].ID)
	assert.Equal(t, models.CategoryCar, first[1].ID)
	assert.Equal(t, models.CategoryCreditCards, first[2].ID)
	assert.Equal(t, models.CategorySavings, first[3].ID)
}

func TestLookup(t *testing.T) {
	r := Default()

	def, ok := r.Lookup(models.CategoryCar)
	require.True(t, ok)
	assert.Equal(t, "Car Payment", def.Label)
	assert.Equal(t, "car payment", def.Keywords[0])

	_, ok = r.Lookup("yachts")
	assert.False(t, ok)
}

func TestAll_ReturnsCopies(t *testing.T) {
	r := Default()

	defs := r.All()
	defs[0].Keywords[0] = "castle"
	defs[0].Label = "Castle"

	def, _ := r.Lookup(models.CategoryHousing)
	assert.Equal(t, "rent", def.Keywords[0])
	assert.Equal(t, "Housing", def.Label)
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name    string
		defs    []models.CategoryDefinition
		wantErr string
	}{
		{name: "empty table", defs: nil, wantErr: "at least one category"},
		{name: "missing id", defs: []models.CategoryDefinition{{Keywords: []string{"x"}}}, wantErr: "without id"},
		{
			name:    "duplicate id",
			defs:    []models.CategoryDefinition{{ID: "a", Keywords: []string{"x"}}, {ID: "a", Keywords: []string{"y"}}},
			wantErr: "duplicate category id 'a'",
		},
		{name: "blank keywords", defs: []models.CategoryDefinition{{ID: "a", Keywords: []string{" ", ""}}}, wantErr: "no keywords"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.defs)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNew_NormalizesKeywords(t *testing.T) {
	r, err := New([]models.CategoryDefinition{{ID: "pets", Keywords: []string{"  Dog Food ", "VET"}}})
	require.NoError(t, err)

	def, _ := r.Lookup("pets")
	assert.Equal(t, []string{"dog food", "vet"}, def.Keywords)
}

func TestMatchWord(t *testing.T) {
	r := Default()

	tests := []struct {
		word     string
		expected string
		found    bool
	}{
		{word: "savings", expected: models.CategorySavings, found: true},
		{word: "Investments", expected: models.CategoryInvestment, found: true},
		{word: "emergency", expected: models.CategoryEmergencyFund, found: true},
		{word: "groceries", expected: models.CategoryGroceries, found: true},
		{word: "mortgages", expected: models.CategoryHousing, found: true},
		{word: "invest", expected: models.CategoryInvestment, found: true},
		{word: "my", found: false},
		{word: "yachts", found: false},
		{word: "", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			def, ok := r.MatchWord(tt.word)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.expected, def.ID)
			}
		})
	}
}

func TestMentions(t *testing.T) {
	r := Default()

	assert.True(t, r.Mentions("Put $300 toward Groceries", models.CategoryGroceries))
	assert.True(t, r.Mentions("two cars to pay", models.CategoryCar))
	assert.False(t, r.Mentions("my credit cards", models.CategoryCar))
	assert.False(t, r.Mentions("carsick", models.CategoryCar))
	assert.False(t, r.Mentions("anything", "unknown"))
}

func TestIsSavingsType(t *testing.T) {
	r := Default()

	assert.True(t, r.IsSavingsType(models.CategorySavings))
	assert.True(t, r.IsSavingsType(models.CategoryEmergencyFund))
	assert.True(t, r.IsSavingsType(models.CategoryInvestment))
	assert.False(t, r.IsSavingsType(models.CategoryHousing))
	assert.False(t, r.IsSavingsType("unknown"))
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid file keeps order", func(t *testing.T) {
		path := filepath.Join(dir, "categories.yaml")
		content := `categories:
  - id: pets
    keywords: [dog food, vet]
    icon: "🐶"
    label: Pets
    budget_bucket: Lifestyle
  - id: housing
    keywords: [rent]
    label: Housing
    budget_bucket: Housing
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0600))

		r, err := LoadFile(path)
		require.NoError(t, err)
		all := r.All()
		require.Len(t, all, 2)
		assert.Equal(t, "pets", all[0].ID)
		assert.Equal(t, "Lifestyle", all[0].BudgetBucket)
		assert.Equal(t, []string{"dog food", "vet", "rent"}, r.Keywords())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(dir, "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("invalid table", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("categories: []\n"), 0600))
		_, err := LoadFile(path)
		assert.ErrorContains(t, err, "at least one category")
	})
}
