package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursor_EncodeDecode(t *testing.T) {
	at := time.Date(2024, 11, 2, 10, 30, 0, 123000, time.UTC)
	c := Cursor{SortValue: at, ID: "3f6b0a3e-1d0a-4a55-9d8c-0a3c1c2c9f11"}

	got, err := DecodeCursor(c.Encode())
	require.NoError(t, err)
	assert.True(t, at.Equal(got.SortValue))
	assert.Equal(t, c.ID, got.ID)
}

func TestDecodeCursor_Invalid(t *testing.T) {
	for _, token := range []string{"", "not base64 !!", Cursor{}.Encode()} {
		_, err := DecodeCursor(token)
		assert.ErrorIs(t, err, ErrInvalidCursor, token)
	}
}

func TestRecordCursors(t *testing.T) {
	at := time.Now()

	assert.Equal(t, Cursor{SortValue: at, ID: "a@x.com"}, User{Email: "a@x.com", CreatedAt: at}.Cursor())
	assert.Equal(t, Cursor{SortValue: at, ID: "p1"}, Payment{ID: "p1", CreatedAt: at}.Cursor())
}

func TestRolesAndServices(t *testing.T) {
	assert.True(t, IsStaff(RoleAdmin))
	assert.True(t, IsStaff(RoleManager))
	assert.False(t, IsStaff(RoleMember))
	assert.False(t, ValidRoles["owner"])

	assert.True(t, IsValidService(ServiceGuasha))
	assert.False(t, IsValidService("sauna"))
}

func TestNormalizeService(t *testing.T) {
	assert.True(t, IsValidService("message"))
	assert.Equal(t, ServiceMassage, NormalizeService("message"))
	assert.Equal(t, ServiceCupping, NormalizeService(ServiceCupping))
	assert.Equal(t, "sauna", NormalizeService("sauna"))
}

func TestReferralLink(t *testing.T) {
	assert.Equal(t,
		"https://wellness.example.com/login?mode=signup&referredBy=8c1f0a52-3a7e-4b8e-9d7c-2f1e6b0a9c11",
		ReferralLink("https://wellness.example.com/", "8c1f0a52-3a7e-4b8e-9d7c-2f1e6b0a9c11"),
	)
}
