package postgres

import (
	"context"

	"dealflow/internal/core/domain"
)

const settlementColumns = `id, contract_id, audit_report_id, handshake_header, receipt, total_paid, currency, status, created_at`

// CreateSettlement inserts a settlement. The unique contract_id is the
// authoritative guard against paying a contract twice.
func (s *Store) CreateSettlement(ctx context.Context, st domain.Settlement) error {
	_, err := s.pool.Exec(ctx, `INSERT INTO settlements (`+settlementColumns+`) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		st.ID, st.ContractID, st.AuditReportID, st.HandshakeHeader, st.Receipt, st.TotalPaid, st.Currency, st.Status, st.CreatedAt)
	return mapError(err)
}

// GetSettlementByContract returns the settlement of a contract.
func (s *Store) GetSettlementByContract(ctx context.Context, contractID string) (*domain.Settlement, error) {
	var st domain.Settlement
	err := s.pool.QueryRow(ctx, `SELECT `+settlementColumns+` FROM settlements WHERE contract_id = $1`, contractID).
		Scan(&st.ID, &st.ContractID, &st.AuditReportID, &st.HandshakeHeader, &st.Receipt, &st.TotalPaid, &st.Currency, &st.Status, &st.CreatedAt)
	return noRows(&st, err)
}
