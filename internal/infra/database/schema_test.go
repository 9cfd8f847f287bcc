package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemasAreValid(t *testing.T) {
	assert.NoError(t, ValidateSchemas())
}

func TestSchemaValidateCatchesDuplicateColumns(t *testing.T) {
	s := Schema{
		Table: "broken",
		Fields: map[string]FieldSpec{
			"a": {Column: "x", Write: true},
			"b": {Column: "x", Write: true},
		},
	}
	assert.Error(t, s.Validate())
}

func TestWriteSetDropsUnknownFields(t *testing.T) {
	cols, vals, err := LeadSchema.WriteSet(Fields{
		"pancard":       "ABCDE1234F",
		"mobile":        "919876543210",
		"drop_me":       "x",
		"another_alien": 42,
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"mobile", "pancard"}, cols)
	assert.Equal(t, []any{"919876543210", "ABCDE1234F"}, vals)
}

func TestWriteSetFailsWhenNothingSurvives(t *testing.T) {
	_, _, err := LeadSchema.WriteSet(Fields{"drop_me": "x"})

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.True(t, IsValidation(err))
}

func TestWriteSetRejectsReadOnlyFields(t *testing.T) {
	// lead_id é filtrável mas não gravável
	_, _, err := LeadSchema.WriteSet(Fields{"lead_id": 9})
	assert.Error(t, err)
}

func TestWhereClauseRejectsUnknownFilter(t *testing.T) {
	_, _, err := LeadSchema.WhereClause(Fields{"first_name": "x"})

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "first_name", ve.Field)
}

func TestWhereClauseBuildsDeterministicSQL(t *testing.T) {
	clause, vals, err := LeadSchema.WhereClause(Fields{
		"pancard": "ABCDE1234F",
		"email":   "a@b.com",
	})

	require.NoError(t, err)
	assert.Equal(t, " WHERE `email` = ? AND `pancard` = ?", clause)
	assert.Equal(t, []any{"a@b.com", "ABCDE1234F"}, vals)
}

func TestOrderClause(t *testing.T) {
	clause, err := LeadSchema.OrderClause("created_on", "desc")
	require.NoError(t, err)
	assert.Equal(t, " ORDER BY `created_on` DESC", clause)

	clause, err = LeadSchema.OrderClause("created_on", "ASC")
	require.NoError(t, err)
	assert.Equal(t, " ORDER BY `created_on` ASC", clause)

	_, err = LeadSchema.OrderClause("mobile", "DESC")
	assert.Error(t, err)
}
