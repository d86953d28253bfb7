package mockapi

import (
	"github.com/finwallet/wallet-bff/upstream"
)

// transactionPages is the static dataset served by the transaction
// store, two pages of five items.
var transactionPages = []upstream.TransactionsResponse{
	{
		Status:  "success",
		Message: "Returning items 1-5",
		Pagination: upstream.Pagination{
			CurrentPage:  1,
			TotalPages:   2,
			TotalItems:   10,
			ItemsPerPage: 5,
		},
		Data: []upstream.Transaction{
			{ID: "txn_abc123def456", AmountInCents: 5000, Currency: "USD", Type: upstream.TransactionTransfer, Status: "SUCCESS", CreatedAt: "2025-10-09T10:30:00Z", DestinationID: "wal_20251009-TRF5"},
			{ID: "txn_ab94430r", AmountInCents: 300, Currency: "USD", Type: upstream.TransactionTransfer, Status: "SUCCESS", CreatedAt: "2025-10-09T10:30:00Z", DestinationID: "wal_20251009-TRF4"},
			{ID: "txn_abc24adf536", AmountInCents: 10000, Currency: "USD", Type: upstream.TransactionTopup, Status: "SUCCESS", CreatedAt: "2025-09-09T10:30:00Z", DestinationID: "wal_20251009-001TP"},
			{ID: "txn_abc123def4123156", AmountInCents: 5025, Currency: "USD", Type: upstream.TransactionTransfer, Status: "SUCCESS", CreatedAt: "2025-08-09T10:30:00Z", DestinationID: "wal_20251009-TRF3"},
			{ID: "txn_abc123def8456", AmountInCents: 3200, Currency: "USD", Type: upstream.TransactionTopup, Status: "SUCCESS", CreatedAt: "2025-08-09T10:30:00Z", DestinationID: "wal_20251009-001TP"},
		},
	},
	{
		Status:  "success",
		Message: "Returning items 6-10",
		Pagination: upstream.Pagination{
			CurrentPage:  2,
			TotalPages:   2,
			TotalItems:   10,
			ItemsPerPage: 5,
		},
		Data: []upstream.Transaction{
			{ID: "txn_abc123def45600", AmountInCents: 5020, Currency: "USD", Type: upstream.TransactionTransfer, Status: "SUCCESS", CreatedAt: "2025-06-20T12:30:00Z", DestinationID: "wal_20251009-TRF2"},
			{ID: "txn_aoe123def456", AmountInCents: 6000, Currency: "USD", Type: upstream.TransactionTransfer, Status: "SUCCESS", CreatedAt: "2025-06-12T10:30:00Z", DestinationID: "wal_20251009-TRF1"},
			{ID: "txn_opql123def456", AmountInCents: 8000, Currency: "USD", Type: upstream.TransactionTopup, Status: "SUCCESS", CreatedAt: "2025-05-09T10:40:00Z", DestinationID: "wal_20251009-001TP"},
			{ID: "txn_aksmc123def456", AmountInCents: 9130, Currency: "USD", Type: upstream.TransactionTopup, Status: "SUCCESS", CreatedAt: "2025-05-09T10:15:00Z", DestinationID: "wal_20251009-001TP"},
		},
	},
}

// transactionPage returns the fixture for a page number, falling back to
// page one for anything out of range.
func transactionPage(page int) upstream.TransactionsResponse {
	if page < 1 || page > len(transactionPages) {
		return transactionPages[0]
	}
	return transactionPages[page-1]
}
