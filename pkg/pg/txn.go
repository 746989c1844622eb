package pg

import (
	"fmt"

	"github.com/carlohamalainen/log/pkg/log"
)

type TxnCfg struct {
	Log    log.Logger `json:"-"`
	Client *Client    `json:"-"`

	Domain string `json:"domain,omitempty"`
}

// A Txn runs functions inside database transactions with transaction-scoped
// logging. It is itself log-capable through the forwarding protocol, so it
// can be handed to any code expecting a Logger; scoping applied to the Txn
// covers the transactions it runs.
type Txn struct {
	Cfg    TxnCfg
	Client *Client
	Log    log.Logger
}

func NewTxn(cfg TxnCfg) (*Txn, error) {
	if cfg.Client == nil {
		return nil, fmt.Errorf("missing client")
	}

	if cfg.Log == nil {
		cfg.Log = cfg.Client.Log
	}

	if cfg.Domain == "" {
		cfg.Domain = "txn"
	}

	return &Txn{
		Cfg:    cfg,
		Client: cfg.Client,
		Log:    cfg.Log,
	}, nil
}

// Run executes fn in a transaction. The logger handed to fn carries the
// transaction domain segment; the error of fn comes back unchanged, with the
// transaction rolled back.
func (t *Txn) Run(fn func(log.Logger, Conn) error) error {
	return t.Log.LocalDomain(t.Cfg.Domain, func(l log.Logger) error {
		return t.Client.WithTx(func(conn Conn) error {
			return fn(l, conn)
		})
	})
}

func (t *Txn) rewrap(scoped log.Logger) log.Logger {
	c := *t
	c.Log = scoped
	return &c
}

func (t *Txn) LogMessage(level log.Level, text string, data log.Data) {
	t.Log.LogMessage(level, text, data)
}

func (t *Txn) LocalData(pairs log.Pairs, fn func(log.Logger) error) error {
	return log.ForwardLocalData(t.Log, t.rewrap, pairs, fn)
}

func (t *Txn) LocalDomain(name string, fn func(log.Logger) error) error {
	return log.ForwardLocalDomain(t.Log, t.rewrap, name, fn)
}

func (t *Txn) LoggerEnv() *log.Env {
	return t.Log.LoggerEnv()
}
