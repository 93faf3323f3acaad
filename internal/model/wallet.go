// Package model defines the core domain types shared across the client.
package model

import "time"

// WalletType classifies a wallet by the kind of account it represents.
type WalletType string

const (
	// WalletTypeCash represents physical cash.
	WalletTypeCash WalletType = "cash"
	// WalletTypeBank represents a bank account.
	WalletTypeBank WalletType = "bank"
	// WalletTypeEWallet represents an electronic wallet.
	WalletTypeEWallet WalletType = "e-wallet"
	// WalletTypeInvestment represents an investment account.
	WalletTypeInvestment WalletType = "investment"
	// WalletTypeOther represents any other account type.
	WalletTypeOther WalletType = "other"
)

// ValidWalletType reports whether t is one of the known wallet types.
func ValidWalletType(t WalletType) bool {
	switch t {
	case WalletTypeCash, WalletTypeBank, WalletTypeEWallet, WalletTypeInvestment, WalletTypeOther:
		return true
	}
	return false
}

// Wallet is a named account holding a balance and associated transactions.
// Balance is always the backend-reported value; the client never recomputes
// it from transactions.
type Wallet struct {
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Name        string
	Description string
	Color       string
	Type        WalletType
	ID          int64
	Balance     float64
}

// Field length limits enforced before any wallet mutation is sent.
const (
	MaxWalletNameLen        = 50
	MaxWalletDescriptionLen = 200
)
