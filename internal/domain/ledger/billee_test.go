package ledger

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printshop/backend/internal/domain/shared"
)

func TestNewBillee(t *testing.T) {
	companyID := uuid.New()

	t.Run("company only", func(t *testing.T) {
		b, err := NewBillee(&companyID, "")
		require.NoError(t, err)
		assert.Equal(t, BilleeCompany, b.Kind())
		id, ok := b.CompanyID()
		assert.True(t, ok)
		assert.Equal(t, companyID, id)
	})

	t.Run("customer only", func(t *testing.T) {
		b, err := NewBillee(nil, "علی رضایی")
		require.NoError(t, err)
		assert.Equal(t, BilleeCustomer, b.Kind())
		assert.Equal(t, "علی رضایی", b.CustomerName())
		_, ok := b.CompanyID()
		assert.False(t, ok)
	})

	t.Run("both set is ambiguous", func(t *testing.T) {
		_, err := NewBillee(&companyID, "علی رضایی")
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "BILLEE_AMBIGUOUS", domainErr.Code)
	})

	t.Run("neither set is missing", func(t *testing.T) {
		_, err := NewBillee(nil, "")
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "BILLEE_MISSING", domainErr.Code)
	})

	t.Run("nil uuid counts as unset", func(t *testing.T) {
		nilID := uuid.Nil
		_, err := NewBillee(&nilID, "")
		require.Error(t, err)
	})
}

func TestBillee_Key(t *testing.T) {
	companyID := uuid.New()

	tests := []struct {
		name   string
		billee Billee
		key    string
	}{
		{"company", CompanyBillee(companyID), "company:" + companyID.String()},
		{"customer", CustomerBillee("سارا"), "customer:سارا"},
		{"unknown", UnknownBillee(), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.key, tt.billee.Key())
		})
	}
}

func TestBillee_Key_SameCustomerNameShareKey(t *testing.T) {
	a := CustomerBillee("سارا")
	b := CustomerBillee("سارا")
	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.Key(), CustomerBillee("مینا").Key())
}

func TestBillee_DisplayName(t *testing.T) {
	company, err := NewCompany("چاپخانه مرکزی", "تهران", "021-555")
	require.NoError(t, err)

	assert.Equal(t, "چاپخانه مرکزی", CompanyBillee(company.ID).DisplayName(company))
	assert.Equal(t, "سارا", CustomerBillee("سارا").DisplayName(nil))
	assert.Equal(t, UnknownBilleeName, UnknownBillee().DisplayName(nil))
	// Company billee with no loaded company falls back to the unknown label.
	assert.Equal(t, UnknownBilleeName, CompanyBillee(uuid.New()).DisplayName(nil))
}

func TestCustomerBillee_EmptyNameIsUnknown(t *testing.T) {
	assert.Equal(t, BilleeUnknown, CustomerBillee("").Kind())
}
