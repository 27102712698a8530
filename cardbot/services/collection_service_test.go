package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ellavondegurechaff/cardbot/cardbot/database/models"
	"github.com/ellavondegurechaff/cardbot/cardbot/economy"
	"github.com/ellavondegurechaff/cardbot/cardbot/interfaces"
	"github.com/ellavondegurechaff/cardbot/cardbot/interfaces/mock"
)

func TestRecordAcquisition(t *testing.T) {
	ctrl := gomock.NewController(t)
	ledger := mock.NewMockLedgerStore(ctrl)
	svc := NewCollectionService(ledger)

	ledger.EXPECT().AppendOwnership(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, o *models.Ownership) error {
			assert.Equal(t, "u1", o.UserID)
			assert.Equal(t, int64(4), o.CardID)
			assert.True(t, o.IsFoil)
			assert.False(t, o.ObtainedAt.IsZero())
			return nil
		})
	require.NoError(t, svc.RecordAcquisition(context.Background(), "u1", 4, true))

	err := svc.RecordAcquisition(context.Background(), "", 4, false)
	assert.True(t, economy.IsValidation(err))
}

func TestHasOwnership(t *testing.T) {
	ctrl := gomock.NewController(t)
	ledger := mock.NewMockLedgerStore(ctrl)
	var owners interfaces.OwnershipChecker = NewCollectionService(ledger)

	ledger.EXPECT().HasOwnership(gomock.Any(), "u1", int64(4)).Return(true, nil)
	owns, err := owners.HasOwnership(context.Background(), "u1", 4)
	require.NoError(t, err)
	assert.True(t, owns)

	dbErr := errors.New("connection reset")
	ledger.EXPECT().HasOwnership(gomock.Any(), "u2", int64(4)).Return(false, dbErr)
	owns, err = owners.HasOwnership(context.Background(), "u2", 4)
	assert.ErrorIs(t, err, dbErr)
	assert.False(t, owns)
}

func TestListInventory(t *testing.T) {
	groups := []*models.OwnershipGroup{
		{Card: &models.Card{ID: 1, Name: "Ash"}, Count: 3},
		{Card: &models.Card{ID: 1, Name: "Ash"}, IsFoil: true, Count: 1},
	}

	tests := []struct {
		name      string
		page      int
		total     int
		rarity    models.Rarity
		setup     func(l *mock.MockLedgerStore)
		wantPage  int
		wantPages int
		wantLen   int
	}{
		{
			name:  "first page",
			page:  1,
			total: 12,
			setup: func(l *mock.MockLedgerStore) {
				l.EXPECT().ListOwnership(gomock.Any(), "u1", models.InventoryFilter{Page: 1, PageSize: 10}).Return(groups, nil)
			},
			wantPage:  1,
			wantPages: 2,
			wantLen:   2,
		},
		{
			name:  "page clamped to one",
			page:  -3,
			total: 2,
			setup: func(l *mock.MockLedgerStore) {
				l.EXPECT().ListOwnership(gomock.Any(), "u1", models.InventoryFilter{Page: 1, PageSize: 10}).Return(groups, nil)
			},
			wantPage:  1,
			wantPages: 1,
			wantLen:   2,
		},
		{
			name:   "rarity filter",
			page:   2,
			total:  11,
			rarity: models.RarityRare,
			setup: func(l *mock.MockLedgerStore) {
				l.EXPECT().ListOwnership(gomock.Any(), "u1", models.InventoryFilter{Page: 2, PageSize: 10, Rarity: models.RarityRare}).Return(groups[:1], nil)
			},
			wantPage:  2,
			wantPages: 2,
			wantLen:   1,
		},
		{
			name:      "empty inventory",
			page:      1,
			total:     0,
			wantPage:  1,
			wantPages: 1,
			wantLen:   0,
		},
		{
			name:      "past the end",
			page:      9,
			total:     5,
			wantPage:  9,
			wantPages: 1,
			wantLen:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			ledger := mock.NewMockLedgerStore(ctrl)
			ledger.EXPECT().CountOwnershipGroups(gomock.Any(), "u1", tt.rarity).Return(tt.total, nil)
			if tt.setup != nil {
				tt.setup(ledger)
			}

			page, err := NewCollectionService(ledger).ListInventory(context.Background(), "u1", tt.page, tt.rarity)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, page.Page)
			assert.Equal(t, tt.wantPages, page.TotalPages)
			assert.Equal(t, tt.total, page.TotalGroups)
			assert.NotNil(t, page.Groups)
			assert.Len(t, page.Groups, tt.wantLen)
		})
	}
}

func TestListInventoryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	ledger := mock.NewMockLedgerStore(ctrl)
	dbErr := errors.New("boom")
	ledger.EXPECT().CountOwnershipGroups(gomock.Any(), "u1", models.Rarity("")).Return(0, dbErr)

	_, err := NewCollectionService(ledger).ListInventory(context.Background(), "u1", 1, "")
	assert.ErrorIs(t, err, dbErr)
}

func TestResolveOwnedCard(t *testing.T) {
	owned := []*models.Card{
		{ID: 3, Name: "Ember Fox"},
		{ID: 9, Name: "Frost Wyrm"},
	}

	tests := []struct {
		name    string
		query   string
		want    int64
		invalid bool
	}{
		{name: "numeric id", query: "42", want: 42},
		{name: "hash id", query: "#9", want: 9},
		{name: "fuzzy name", query: "frost", want: 9},
		{name: "fuzzy initials", query: "efx", want: 3},
		{name: "no match", query: "zzz", invalid: true},
		{name: "blank", query: "  ", invalid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			ledger := mock.NewMockLedgerStore(ctrl)
			ledger.EXPECT().ListOwnedCards(gomock.Any(), "u1").Return(owned, nil).AnyTimes()

			id, err := NewCollectionService(ledger).ResolveOwnedCard(context.Background(), "u1", tt.query)
			if tt.invalid {
				assert.True(t, economy.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}
