package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"persona/internal/persona/models"
	dErrors "persona/pkg/domain-errors"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestValidateCreate(t *testing.T) {
	t.Run("accepts minimal request with only email", func(t *testing.T) {
		err := ValidateCreate(&models.CreatePersonaRequest{Email: "a@mypersona.tk"})
		assert.NoError(t, err)
	})

	t.Run("rejects missing email before any other rule", func(t *testing.T) {
		err := ValidateCreate(&models.CreatePersonaRequest{
			Profile: models.Profile{Age: intPtr(-1)},
		})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		assert.Equal(t, "email", dErrors.FieldOf(err))
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		for _, email := range []string{"nope", "@mypersona.tk", "a@", "a b@mypersona.tk"} {
			err := ValidateCreate(&models.CreatePersonaRequest{Email: email})
			require.Error(t, err, "email %q", email)
			assert.Equal(t, "email", dErrors.FieldOf(err))
		}
	})

	t.Run("runs the profile rules after the email rules", func(t *testing.T) {
		err := ValidateCreate(&models.CreatePersonaRequest{
			Email:   "a@mypersona.tk",
			Profile: models.Profile{Birthday: strPtr("31-12-1999")},
		})
		require.Error(t, err)
		assert.Equal(t, "birthday", dErrors.FieldOf(err))
	})
}

func TestValidateEdit(t *testing.T) {
	t.Run("rejects an empty update", func(t *testing.T) {
		err := ValidateEdit(&models.EditPersonaRequest{})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("accepts a single-field update", func(t *testing.T) {
		err := ValidateEdit(&models.EditPersonaRequest{
			Profile: models.Profile{Alias: strPtr("ghost")},
		})
		assert.NoError(t, err)
	})
}

func TestValidateProfile(t *testing.T) {
	cases := []struct {
		name      string
		profile   models.Profile
		wantField string
	}{
		{"all fields absent passes", models.Profile{}, ""},
		{"zero age passes", models.Profile{Age: intPtr(0)}, ""},
		{"negative age rejected", models.Profile{Age: intPtr(-3)}, "age"},
		{"valid birthday passes", models.Profile{Birthday: strPtr("1999-12-31")}, ""},
		{"non-date birthday rejected", models.Profile{Birthday: strPtr("yesterday")}, "birthday"},
		{"out-of-range date rejected", models.Profile{Birthday: strPtr("1999-13-45")}, "birthday"},
		{"valid phone passes", models.Profile{Phone: strPtr("+31612345678")}, ""},
		{"phone without plus passes", models.Profile{Phone: strPtr("31612345678")}, ""},
		{"short phone rejected", models.Profile{Phone: strPtr("12345")}, "phone"},
		{"alphabetic phone rejected", models.Profile{Phone: strPtr("call-me")}, "phone"},
		{"address with line1 passes", models.Profile{Address: &models.Address{Line1: "Main St 1"}}, ""},
		{"address without line1 rejected", models.Profile{Address: &models.Address{City: "Utrecht"}}, "address.line1"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateProfile(&tc.profile)
			if tc.wantField == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
			assert.Equal(t, tc.wantField, dErrors.FieldOf(err))
		})
	}

	t.Run("first violation wins in rule order", func(t *testing.T) {
		err := ValidateProfile(&models.Profile{
			Age:      intPtr(-1),
			Birthday: strPtr("nope"),
			Phone:    strPtr("x"),
		})
		require.Error(t, err)
		assert.Equal(t, "age", dErrors.FieldOf(err))
	})

	t.Run("input is never mutated", func(t *testing.T) {
		age := -1
		p := models.Profile{Age: &age}
		_ = ValidateProfile(&p)
		assert.Equal(t, -1, *p.Age)
	})
}
