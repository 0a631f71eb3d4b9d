package model_test

import (
	"reflect"
	"regexp"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolapp/internal/infra/persistence/model"
	"schoolapp/internal/usecase"
)

var (
	varcharPattern = regexp.MustCompile(`varchar\((\d+)\)`)
	maxPattern     = regexp.MustCompile(`max=(\d+)`)
)

func tagLimit(t *testing.T, typ reflect.Type, field, tag string, pattern *regexp.Regexp) int {
	t.Helper()

	f, ok := typ.FieldByName(field)
	require.True(t, ok, "%s has no field %s", typ.Name(), field)

	match := pattern.FindStringSubmatch(f.Tag.Get(tag))
	require.Len(t, match, 2, "%s.%s has no %s limit", typ.Name(), field, tag)

	n, err := strconv.Atoi(match[1])
	require.NoError(t, err)

	return n
}

// Every value the signup form accepts must fit its column.
func TestColumnsFitSignUpLimits(t *testing.T) {
	input := reflect.TypeFor[usecase.SignUpTeacherInput]()

	tests := []struct {
		model reflect.Type
		field string
	}{
		{reflect.TypeFor[model.UserModel](), "Username"},
		{reflect.TypeFor[model.UserModel](), "Email"},
		{reflect.TypeFor[model.UserModel](), "Firstname"},
		{reflect.TypeFor[model.UserModel](), "Lastname"},
		{reflect.TypeFor[model.TeacherModel](), "PhoneNumber"},
		{reflect.TypeFor[model.TeacherModel](), "Institution"},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			column := tagLimit(t, tt.model, tt.field, "gorm", varcharPattern)
			accepted := tagLimit(t, input, tt.field, "validate", maxPattern)

			assert.GreaterOrEqual(t, column, accepted)
		})
	}
}
