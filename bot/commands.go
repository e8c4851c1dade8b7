package bot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/RaghavSood/bridgeswap/addrcheck"
	"github.com/RaghavSood/bridgeswap/registry"
	"github.com/RaghavSood/bridgeswap/session"
	"github.com/RaghavSood/bridgeswap/swaps"
	"github.com/RaghavSood/bridgeswap/wallet"
)

const defaultWallet = "metamask"

const historyShown = 10

const helpText = `Welcome to BridgeSwap! Move stablecoins between chains at the best rate.

/chains - list supported chains
/assets <chain> - list assets on a chain
/from <SYMBOL@chain> - asset to send
/to <SYMBOL@chain> - asset to receive
/amount <n> - amount to send
/receiver <address> - destination address
/connect [wallet|address] - connect a wallet
/disconnect - disconnect the wallet
/routes - show current routes
/pick <n> - select a route
/swap - execute the selected route
/balance - balance of the source asset
/history - recent swaps`

func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	if !msg.IsCommand() {
		return
	}

	args := strings.TrimSpace(msg.CommandArguments())
	switch msg.Command() {
	case "start", "help":
		b.replyPlain(msg, helpText)
	case "chains":
		b.handleChains(msg)
	case "assets":
		b.handleAssets(msg, args)
	case "from":
		b.handleAsset(msg, args, true)
	case "to":
		b.handleAsset(msg, args, false)
	case "amount":
		b.handleAmount(msg, args)
	case "receiver":
		b.handleReceiver(msg, args)
	case "connect":
		b.handleConnect(msg, args)
	case "disconnect":
		b.chatFor(msg.Chat.ID).sess.Disconnect()
		b.replyPlain(msg, "Wallet disconnected.")
	case "routes":
		b.handleRoutes(msg)
	case "pick":
		b.handlePick(msg, args)
	case "swap":
		b.handleSwap(msg)
	case "balance":
		b.handleBalance(msg)
	case "history":
		b.handleHistory(msg)
	default:
		b.replyPlain(msg, "Unknown command. Use /start to get started.")
	}
}

func (b *Bot) handleChains(msg *tgbotapi.Message) {
	var sb strings.Builder
	sb.WriteString("*Supported chains*\n")
	for _, c := range b.deps.Registry.ListChains() {
		fmt.Fprintf(&sb, "`%s` %s (%s)\n", c.ID, c.Name, c.WalletStandard)
	}
	fmt.Fprintf(&sb, "\nAssets: %s", strings.Join(b.deps.Registry.Symbols(), ", "))
	b.reply(msg, sb.String())
}

func (b *Bot) handleAssets(msg *tgbotapi.Message, chainID string) {
	if chainID == "" {
		b.replyPlain(msg, "Usage: /assets <chain>")
		return
	}
	chain, ok := b.deps.Registry.Chain(strings.ToLower(chainID))
	if !ok {
		b.replyPlain(msg, "Unknown chain. Use /chains to list supported chains.")
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "*Assets on %s*\n", chain.Name)
	for _, a := range b.deps.Registry.ListAssetsForChain(chain.ID) {
		fmt.Fprintf(&sb, "`%s` %s\n", a.String(), a.Name)
	}
	b.reply(msg, sb.String())
}

func (b *Bot) handleAsset(msg *tgbotapi.Message, notation string, source bool) {
	cmd := "/to"
	if source {
		cmd = "/from"
	}
	if notation == "" {
		b.replyPlain(msg, "Usage: "+cmd+" <SYMBOL@chain>, e.g. "+cmd+" USDT@ethereum")
		return
	}
	asset, err := b.deps.Registry.Resolve(notation)
	if err != nil {
		b.replyPlain(msg, "Unknown asset: "+err.Error())
		return
	}

	sess := b.chatFor(msg.Chat.ID).sess
	if source {
		sess.SetFromAsset(asset)
	} else {
		sess.SetToAsset(asset)
	}
	snap := sess.Snapshot()
	b.reply(msg, fmt.Sprintf("Sending `%s`, receiving `%s`.", orDash(snap.From), orDash(snap.To)))
}

func (b *Bot) handleAmount(msg *tgbotapi.Message, amount string) {
	if amount == "" {
		b.replyPlain(msg, "Usage: /amount <n>")
		return
	}
	if _, ok := swaps.ParseAmount(amount); !ok {
		b.replyPlain(msg, "Amount must be a positive number.")
		return
	}
	c := b.chatFor(msg.Chat.ID)
	c.sess.SetAmount(amount)
	snap := c.sess.Snapshot()
	if snap.From.Symbol == "" || snap.To.Symbol == "" {
		b.replyPlain(msg, "Amount set. Choose assets with /from and /to.")
		return
	}
	b.replyPlain(msg, "Amount set. Finding routes...")
}

func (b *Bot) handleReceiver(msg *tgbotapi.Message, address string) {
	if address == "" {
		b.replyPlain(msg, "Usage: /receiver <address>")
		return
	}
	sess := b.chatFor(msg.Chat.ID).sess
	sess.SetReceiver(address)
	snap := sess.Snapshot()
	if snap.To.Symbol != "" && !snap.ReceiverValid {
		b.replyPlain(msg, fmt.Sprintf("Receiver set, but it is not a valid %s address.", snap.To.Chain.WalletStandard))
		return
	}
	b.reply(msg, fmt.Sprintf("Receiver set to `%s`.", address))
}

// handleConnect connects a wallet by provider ID, or watches a bare address
// through the first wallet of the source chain's standard.
func (b *Bot) handleConnect(msg *tgbotapi.Message, arg string) {
	c := b.chatFor(msg.Chat.ID)
	if arg == "" {
		arg = defaultWallet
	}

	var (
		acct wallet.Account
		err  error
	)
	if _, findErr := wallet.FindProvider(strings.ToLower(arg)); findErr == nil {
		if b.deps.Wallets == nil {
			b.replyPlain(msg, "No wallets are configured on this bot. Use /connect <address> instead.")
			return
		}
		acct, err = b.deps.Wallets.Connect(b.ctx, strings.ToLower(arg))
	} else {
		std, ok := b.standardFor(c, arg)
		if !ok {
			b.replyPlain(msg, "Unknown wallet or address format.")
			return
		}
		acct, err = wallet.Connect(b.ctx, wallet.NewStaticConnector(wallet.ProvidersFor(std)[0], arg))
	}
	if err != nil {
		var werr *wallet.WalletError
		if errors.As(err, &werr) {
			b.replyPlain(msg, "Could not connect "+werr.Provider+": "+werr.Err.Error())
			return
		}
		b.replyPlain(msg, "Could not connect: "+err.Error())
		return
	}

	c.sess.ConnectWallet(acct)
	b.reply(msg, fmt.Sprintf("Connected %s: `%s`", acct.Provider.Name, acct.Address))
}

// standardFor picks the wallet standard of a bare address, preferring the
// source chain's standard.
func (b *Bot) standardFor(c *chat, address string) (registry.WalletStandard, bool) {
	snap := c.sess.Snapshot()
	if snap.From.Symbol != "" && addrcheck.IsValidAddress(address, snap.From.Chain.WalletStandard) {
		return snap.From.Chain.WalletStandard, true
	}
	for _, std := range registry.Standards {
		if addrcheck.IsValidAddress(address, std) && len(wallet.ProvidersFor(std)) > 0 {
			return std, true
		}
	}
	return "", false
}

func (b *Bot) handleRoutes(msg *tgbotapi.Message) {
	c := b.chatFor(msg.Chat.ID)
	snap := c.sess.Snapshot()

	switch snap.QuoteState {
	case session.QuotesReady:
		b.reply(msg, formatRoutes(snap))
		return
	case session.QuotesLoading:
		b.replyPlain(msg, session.ReasonFindingRoutes)
		return
	}

	if snap.Pending {
		b.replyPlain(msg, session.ReasonFindingRoutes)
		return
	}

	// Idle, empty or failed: fetch again now.
	snap, err := c.sess.Refresh(b.ctx)
	if err != nil {
		// Failures are pushed by the change listener.
		b.logger.Debug("refresh failed", zap.Int64("chat", msg.Chat.ID), zap.Error(err))
		return
	}
	if snap.QuoteState == session.QuotesIdle {
		b.replyPlain(msg, "Set /from, /to and /amount to see routes.")
	}
}

func (b *Bot) handlePick(msg *tgbotapi.Message, arg string) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		b.replyPlain(msg, "Usage: /pick <n>")
		return
	}
	sess := b.chatFor(msg.Chat.ID).sess
	if err := sess.SelectRoute(n - 1); err != nil {
		b.replyPlain(msg, "No such route. Use /routes to list them.")
		return
	}
	r, _ := sess.Snapshot().SelectedRoute()
	b.replyPlain(msg, fmt.Sprintf("Selected route %d via %s.", n, r.Bridge.Name))
}

func (b *Bot) handleSwap(msg *tgbotapi.Message) {
	c := b.chatFor(msg.Chat.ID)
	if reason := c.sess.SubmitBlocker(); reason != "" {
		b.replyPlain(msg, "Cannot swap yet: "+reason)
		return
	}

	r, _ := c.sess.Snapshot().SelectedRoute()
	b.replyPlain(msg, fmt.Sprintf("Submitting swap via %s...", r.Bridge.Name))

	// Settlement can take minutes; the outcome is pushed by the change listener.
	go func() {
		tx, err := c.sess.Submit(b.ctx)
		if err != nil {
			b.logger.Info("swap not completed", zap.Int64("chat", c.id), zap.Error(err))
			return
		}
		if b.deps.Balances != nil {
			b.deps.Balances.Invalidate(tx.Sender, r.From)
		}
	}()
}

func (b *Bot) handleBalance(msg *tgbotapi.Message) {
	snap := b.chatFor(msg.Chat.ID).sess.Snapshot()
	if snap.Account == nil {
		b.replyPlain(msg, session.ReasonConnectWallet)
		return
	}
	if snap.From.Symbol == "" {
		b.replyPlain(msg, "Choose a source asset with /from first.")
		return
	}
	if b.deps.Balances == nil || !b.deps.Balances.Supports(snap.From.Chain) {
		b.replyPlain(msg, "Balance lookup is not available for "+snap.From.Chain.Name+".")
		return
	}

	bal, err := b.deps.Balances.GetBalance(b.ctx, snap.Account.Address, snap.From)
	if err != nil {
		b.logger.Warn("balance lookup failed", zap.Stringer("asset", snap.From), zap.Error(err))
		b.replyPlain(msg, "Could not fetch balance: "+err.Error())
		return
	}
	b.reply(msg, fmt.Sprintf("Balance: `%s %s`", bal.StringFixed(snap.From.Decimals), snap.From.String()))
}

func (b *Bot) handleHistory(msg *tgbotapi.Message) {
	if b.deps.Store == nil {
		b.replyPlain(msg, "History is not available.")
		return
	}
	txs, err := b.deps.Store.GetTransactions(b.ctx)
	if err != nil {
		b.logger.Error("failed to load history", zap.Error(err))
		b.replyPlain(msg, "Could not load history.")
		return
	}
	if len(txs) == 0 {
		b.replyPlain(msg, "No swaps yet.")
		return
	}
	if len(txs) > historyShown {
		txs = txs[:historyShown]
	}
	b.reply(msg, formatHistory(txs))
}

func orDash(a registry.Asset) string {
	if a.Symbol == "" {
		return "-"
	}
	return a.String()
}
