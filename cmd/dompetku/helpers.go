package main

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/dompetku/dompetku/internal/api"
	"github.com/dompetku/dompetku/internal/config"
	"github.com/dompetku/dompetku/internal/model"
	"github.com/dompetku/dompetku/internal/query"
	"github.com/dompetku/dompetku/internal/session"
	"github.com/dompetku/dompetku/internal/store"
)

// newClient builds the API client from the active configuration.
func newClient() (*api.Client, *session.FileStore, error) {
	tokenPath := viper.GetString("auth.token_file")
	if tokenPath == "" {
		var err error
		tokenPath, err = session.DefaultPath()
		if err != nil {
			return nil, nil, err
		}
	} else {
		tokenPath = config.ExpandPath(tokenPath)
	}
	tokens := session.NewFileStore(tokenPath)

	timeout := viper.GetDuration("api.timeout")
	if timeout == 0 {
		timeout = api.DefaultTimeout
	}
	client := api.NewClient(viper.GetString("api.base_url"), timeout, tokens)
	return client, tokens, nil
}

// newStores wires the wallet and transaction stores together: the wallet
// selection feeds into the transaction filter, one-directionally.
func newStores(client *api.Client) (*store.WalletStore, *store.TransactionStore) {
	wallets := store.NewWalletStore(client)
	transactions := store.NewTransactionStore(client, wallets.Current)
	wallets.BindSelection(func(w *model.Wallet) {
		if w != nil {
			transactions.SetWallet(w.ID)
		} else {
			transactions.SetWallet(0)
		}
	})
	return wallets, transactions
}

// applyDefaultWallet restores the wallet selection saved by
// `dompetku wallets select`, if any, once the collection is loaded.
func applyDefaultWallet(wallets *store.WalletStore) {
	id := viper.GetInt64("defaults.wallet_id")
	if id == 0 {
		return
	}
	if w, ok := wallets.ByID(id); ok {
		wallets.SetCurrent(&w)
	}
}

// resolveRange turns either a named period or an explicit --from/--to pair
// into filter bounds.
func resolveRange(period, from, to string, now time.Time) (start, end model.Date, title string, err error) {
	if from != "" || to != "" {
		if from != "" {
			start = model.RawDate(from)
		}
		if to != "" {
			end = model.RawDate(to)
		}
		return start, end, "Custom", nil
	}

	p, err := parsePeriodFlag(period)
	if err != nil {
		return model.Date{}, model.Date{}, "", err
	}
	start, end = p.Range(now)
	return start, end, p.Title(), nil
}

func parsePeriodFlag(s string) (query.Period, error) {
	if s == "" {
		return query.PeriodThisMonth, nil
	}
	return query.ParsePeriod(s)
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	var answer string
	if _, err := fmt.Scanln(&answer); err != nil {
		return false
	}
	return answer == "y" || answer == "Y" || answer == "yes"
}
