package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func node(t *testing.T, src string) *yaml.Node {
	t.Helper()
	var n yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(src), &n))
	require.NotEmpty(t, n.Content)
	return n.Content[0]
}

func TestDecode_Department(t *testing.T) {
	shape, err := Decode("departments", 0, node(t, `{id: dept-eng, organizationId: org-mas, name: Engineering, code: ENG, headcount: 24}`))
	require.NoError(t, err)

	dept, ok := shape.(*Department)
	require.True(t, ok)
	assert.Equal(t, "dept-eng", dept.RecordID())
	assert.Equal(t, 24, dept.Headcount)
	assert.Nil(t, dept.CreatedAt)
}

func TestDecode_KeepsExplicitAudit(t *testing.T) {
	shape, err := Decode("departments", 0, node(t, `
id: dept-ops
organizationId: org-mas
name: Operations
code: OPS
headcount: 8
createdAt: "2024-06-01T08:00:00Z"
createdBy: migration
`))
	require.NoError(t, err)

	fields, err := Fields(shape)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01T08:00:00Z", fields["createdAt"])
	assert.Equal(t, "migration", fields["createdBy"])
	assert.NotContains(t, fields, "updatedAt")
	assert.NotContains(t, fields, "updatedBy")
}

func TestDecode_UnknownField(t *testing.T) {
	_, err := Decode("departments", 3, node(t, `{id: dept-x, organizationId: org-mas, name: X, code: XXX, colour: red}`))
	require.ErrorIs(t, err, ErrInvalidRecord)

	var recErr *RecordError
	require.True(t, errors.As(err, &recErr))
	assert.Equal(t, "departments", recErr.Collection)
	assert.Equal(t, 3, recErr.Index)
	assert.Contains(t, err.Error(), "colour")
}

func TestDecode_RejectsUnknownPermission(t *testing.T) {
	_, err := Decode("roles", 1, node(t, `{id: role-x, organizationId: org-mas, name: X, portal: admin, permissions: [users:read, root:all]}`))
	require.ErrorIs(t, err, ErrInvalidRecord)

	var recErr *RecordError
	require.True(t, errors.As(err, &recErr))
	assert.Equal(t, "role-x", recErr.ID)
	require.Len(t, recErr.Fields, 1)
	assert.Equal(t, "permission", recErr.Fields[0].Rule)
	assert.Contains(t, err.Error(), `roles[1] (id "role-x")`)
}

func TestDecode_ReportsEveryFailingField(t *testing.T) {
	_, err := Decode("users", 0, node(t, `{id: user-x, email: not-an-email, displayName: X, roleId: role-x, portal: kiosk, status: active}`))
	require.ErrorIs(t, err, ErrInvalidRecord)

	var recErr *RecordError
	require.True(t, errors.As(err, &recErr))
	rules := map[string]string{}
	for _, f := range recErr.Fields {
		rules[f.Field] = f.Rule
	}
	assert.Equal(t, map[string]string{"email": "email", "portal": "portal"}, rules)
}

func TestDecode_BadDate(t *testing.T) {
	_, err := Decode("employees", 0, node(t, `{id: emp-x, userId: u, departmentId: d, title: T, employmentType: full_time, hireDate: "01/02/2024", salary: 1}`))
	require.ErrorIs(t, err, ErrInvalidRecord)
	assert.Contains(t, err.Error(), "hireDate failed isodate")
}

func TestDecode_UnknownCollection(t *testing.T) {
	_, err := Decode("payslips", 0, node(t, `{id: p1}`))
	assert.ErrorIs(t, err, ErrUnknownCollection)
}

func TestCollections(t *testing.T) {
	names := Collections()
	assert.Len(t, names, 20)
	assert.IsNonDecreasing(t, names)
	assert.Contains(t, names, "onboardingTemplates")
}
