package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSaleListResponsePagination(t *testing.T) {
	tests := []struct {
		total, limit, wantPages int
	}{
		{0, 12, 0},
		{1, 12, 1},
		{12, 12, 1},
		{13, 12, 2},
		{24, 12, 2},
		{25, 12, 3},
		{5, 2, 3},
		{10, 0, 0},
	}
	for _, tt := range tests {
		resp := NewSaleListResponse(nil, tt.total, 1, tt.limit)
		assert.Equal(t, tt.wantPages, resp.Pages, "total=%d limit=%d", tt.total, tt.limit)
		assert.Equal(t, tt.total, resp.Total)
		assert.NotNil(t, resp.Items, "items must serialize as [] not null")
	}
}

func TestAdminModerationAllowed(t *testing.T) {
	tests := []struct {
		old, new string
		want     bool
	}{
		{ListingStatusPending, ListingStatusApproved, true},
		{ListingStatusPending, ListingStatusRejected, true},
		{ListingStatusApproved, ListingStatusUnavailable, true},
		{ListingStatusRejected, ListingStatusApproved, false},
		{ListingStatusApproved, ListingStatusRejected, false},
		{ListingStatusSold, ListingStatusApproved, false},
		{ListingStatusPending, ListingStatusSold, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AdminModerationAllowed(tt.old, tt.new), "%s -> %s", tt.old, tt.new)
	}
}

func TestOwnerToggleAllowed(t *testing.T) {
	assert.True(t, OwnerToggleAllowed(ListingStatusApproved, ListingStatusSold))
	assert.True(t, OwnerToggleAllowed(ListingStatusSold, ListingStatusApproved))

	assert.False(t, OwnerToggleAllowed(ListingStatusPending, ListingStatusSold))
	assert.False(t, OwnerToggleAllowed(ListingStatusPending, ListingStatusApproved))
	assert.False(t, OwnerToggleAllowed(ListingStatusRejected, ListingStatusApproved))
	assert.False(t, OwnerToggleAllowed(ListingStatusApproved, ListingStatusApproved))
}
