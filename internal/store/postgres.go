package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Shino972/GarantGiftsTelegramBot/internal/domain"
)

// Postgres — внешнее хранилище. Всё читается целиком на старте,
// каждая мутация записывается сразу (write-through).
type Postgres struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (s *Postgres) InitSchema(ctx context.Context) error {
	tables := []string{
		`CREATE TABLE IF NOT EXISTS accounts (
			id BIGINT PRIMARY KEY,
			balance DOUBLE PRECISION NOT NULL DEFAULT 0,
			wallet TEXT NOT NULL DEFAULT '',
			card TEXT NOT NULL DEFAULT '',
			referral_code TEXT NOT NULL,
			referrals BIGINT[] NOT NULL DEFAULT '{}'
		);`,
		`CREATE TABLE IF NOT EXISTS deals (
			id TEXT PRIMARY KEY,
			seller_id BIGINT NOT NULL,
			buyer_id BIGINT NOT NULL DEFAULT 0,
			amount DOUBLE PRECISION NOT NULL,
			currency TEXT NOT NULL,
			description TEXT NOT NULL,
			status TEXT NOT NULL,
			pushed BOOLEAN NOT NULL DEFAULT FALSE,
			transfer_confirmed BOOLEAN NOT NULL DEFAULT FALSE,
			dispute_open BOOLEAN NOT NULL DEFAULT FALSE,
			dispute_text TEXT NOT NULL DEFAULT '',
			seller_deals INT NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS withdrawal_requests (
			id TEXT PRIMARY KEY,
			account_id BIGINT NOT NULL,
			amount DOUBLE PRECISION NOT NULL,
			method TEXT NOT NULL,
			details TEXT NOT NULL,
			completed BOOLEAN NOT NULL DEFAULT FALSE,
			message_id INT NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS referral_links (
			code TEXT PRIMARY KEY,
			account_id BIGINT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS adjustments (
			id TEXT PRIMARY KEY,
			account_id BIGINT NOT NULL,
			amount DOUBLE PRECISION NOT NULL,
			note TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,
	}

	for _, q := range tables {
		if _, err := s.pool.Exec(ctx, q); err != nil {
			return fmt.Errorf("store: init schema: %w", err)
		}
	}
	return nil
}

func (s *Postgres) LoadAccounts(ctx context.Context) ([]domain.Account, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, balance, wallet, card, referral_code, referrals
		FROM accounts
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Account
	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(&a.ID, &a.Balance, &a.Wallet, &a.Card, &a.ReferralCode, &a.Referrals); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Postgres) SaveAccount(ctx context.Context, a domain.Account) error {
	refs := a.Referrals
	if refs == nil {
		refs = []int64{}
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO accounts(id, balance, wallet, card, referral_code, referrals)
		VALUES($1,$2,$3,$4,$5,$6)
		ON CONFLICT (id) DO UPDATE
		SET balance=EXCLUDED.balance,
			wallet=EXCLUDED.wallet,
			card=EXCLUDED.card,
			referral_code=EXCLUDED.referral_code,
			referrals=EXCLUDED.referrals
	`, a.ID, a.Balance, a.Wallet, a.Card, a.ReferralCode, refs)
	return err
}

func (s *Postgres) LoadDeals(ctx context.Context) ([]domain.Deal, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, seller_id, buyer_id, amount, currency, description,
		       status, pushed, transfer_confirmed, dispute_open, dispute_text, seller_deals
		FROM deals
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Deal
	for rows.Next() {
		var d domain.Deal
		if err := rows.Scan(&d.ID, &d.SellerID, &d.BuyerID, &d.Amount, &d.Currency, &d.Description,
			&d.Status, &d.Pushed, &d.TransferConfirmed, &d.DisputeOpen, &d.DisputeText, &d.SellerDeals); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *Postgres) SaveDeal(ctx context.Context, d domain.Deal) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO deals(id, seller_id, buyer_id, amount, currency, description,
			status, pushed, transfer_confirmed, dispute_open, dispute_text, seller_deals)
		VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		ON CONFLICT (id) DO UPDATE
		SET buyer_id=EXCLUDED.buyer_id,
			status=EXCLUDED.status,
			pushed=EXCLUDED.pushed,
			transfer_confirmed=EXCLUDED.transfer_confirmed,
			dispute_open=EXCLUDED.dispute_open,
			dispute_text=EXCLUDED.dispute_text
	`, d.ID, d.SellerID, d.BuyerID, d.Amount, d.Currency, d.Description,
		d.Status, d.Pushed, d.TransferConfirmed, d.DisputeOpen, d.DisputeText, d.SellerDeals)
	return err
}

func (s *Postgres) LoadWithdrawalRequests(ctx context.Context) ([]domain.WithdrawalRequest, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, account_id, amount, method, details, completed, message_id
		FROM withdrawal_requests
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.WithdrawalRequest
	for rows.Next() {
		var r domain.WithdrawalRequest
		if err := rows.Scan(&r.ID, &r.AccountID, &r.Amount, &r.Method, &r.Details, &r.Completed, &r.MessageID); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Postgres) SaveWithdrawalRequest(ctx context.Context, r domain.WithdrawalRequest) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO withdrawal_requests(id, account_id, amount, method, details, completed, message_id)
		VALUES($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (id) DO UPDATE
		SET completed=EXCLUDED.completed,
			message_id=EXCLUDED.message_id
	`, r.ID, r.AccountID, r.Amount, r.Method, r.Details, r.Completed, r.MessageID)
	return err
}

func (s *Postgres) LoadReferralLinks(ctx context.Context) ([]domain.ReferralLink, error) {
	rows, err := s.pool.Query(ctx, `SELECT code, account_id FROM referral_links`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ReferralLink
	for rows.Next() {
		var l domain.ReferralLink
		if err := rows.Scan(&l.Code, &l.AccountID); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (s *Postgres) SaveReferralLink(ctx context.Context, l domain.ReferralLink) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO referral_links(code, account_id)
		VALUES($1,$2)
		ON CONFLICT (code) DO UPDATE SET account_id=EXCLUDED.account_id
	`, l.Code, l.AccountID)
	return err
}

func (s *Postgres) SaveAdjustment(ctx context.Context, a domain.Adjustment) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO adjustments(id, account_id, amount, note, created_at)
		VALUES($1,$2,$3,$4,$5)
		ON CONFLICT (id) DO NOTHING
	`, a.ID, a.AccountID, a.Amount, a.Note, a.CreatedAt)
	return err
}
