package registry

var chains = []Chain{
	{ID: "ethereum", Name: "Ethereum", WalletStandard: StandardEVM, ExplorerURL: "https://etherscan.io", ExplorerTxPath: "/tx/", NumericID: 1},
	{ID: "arbitrum", Name: "Arbitrum", WalletStandard: StandardEVM, ExplorerURL: "https://arbiscan.io", ExplorerTxPath: "/tx/", NumericID: 42161},
	{ID: "polygon", Name: "Polygon", WalletStandard: StandardEVM, ExplorerURL: "https://polygonscan.com", ExplorerTxPath: "/tx/", NumericID: 137},
	{ID: "optimism", Name: "Optimism", WalletStandard: StandardEVM, ExplorerURL: "https://optimistic.etherscan.io", ExplorerTxPath: "/tx/", NumericID: 10},
	{ID: "bsc", Name: "BNB Smart Chain", WalletStandard: StandardEVM, ExplorerURL: "https://bscscan.com", ExplorerTxPath: "/tx/", NumericID: 56},
	{ID: "avalanche", Name: "Avalanche", WalletStandard: StandardEVM, ExplorerURL: "https://snowtrace.io", ExplorerTxPath: "/tx/", NumericID: 43114},
	{ID: "solana", Name: "Solana", WalletStandard: StandardSolana, ExplorerURL: "https://solscan.io", ExplorerTxPath: "/tx/", NumericID: 101},
	{ID: "tron", Name: "Tron", WalletStandard: StandardTron, ExplorerURL: "https://tronscan.org", ExplorerTxPath: "/#/transaction/", NumericID: 728126428},
	{ID: "sui", Name: "Sui", WalletStandard: StandardSui, ExplorerURL: "https://suiscan.xyz", ExplorerTxPath: "/tx/", NumericID: 201},
	{ID: "near", Name: "NEAR Protocol", WalletStandard: StandardNear, ExplorerURL: "https://nearblocks.io", ExplorerTxPath: "/txns/", NumericID: 202},
	{ID: "cronos", Name: "Cronos", WalletStandard: StandardEVM, ExplorerURL: "https://cronoscan.com", ExplorerTxPath: "/tx/", NumericID: 25},
	{ID: "base", Name: "Base", WalletStandard: StandardEVM, ExplorerURL: "https://basescan.org", ExplorerTxPath: "/tx/", NumericID: 8453},
	{ID: "gnosis", Name: "Gnosis", WalletStandard: StandardEVM, ExplorerURL: "https://gnosisscan.io", ExplorerTxPath: "/tx/", NumericID: 100},
	{ID: "fantom", Name: "Fantom", WalletStandard: StandardEVM, ExplorerURL: "https://ftmscan.com", ExplorerTxPath: "/tx/", NumericID: 250},
	{ID: "polygon-zkevm", Name: "Polygon zkEVM", WalletStandard: StandardEVM, ExplorerURL: "https://zkevm.polygonscan.com", ExplorerTxPath: "/tx/", NumericID: 1101},
	{ID: "zksync", Name: "zkSync Era", WalletStandard: StandardEVM, ExplorerURL: "https://explorer.zksync.io", ExplorerTxPath: "/tx/", NumericID: 324},
	{ID: "linea", Name: "Linea", WalletStandard: StandardEVM, ExplorerURL: "https://lineascan.build", ExplorerTxPath: "/tx/", NumericID: 59144},
}

type stablePair struct {
	chainID  string
	decimals int32
	usdt     string
	usdc     string
}

// USDT and USDC contracts per chain
var stables = []stablePair{
	{"ethereum", 6, "0xdAC17F958D2ee523a2206206994597C13D831ec7", "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"},
	{"arbitrum", 6, "0xFd086bC7CD5C481DCC9C85ebE478A1C0b69FCbb9", "0xaf88d065e77c8cC2239327C5EDb3A432268e5831"},
	{"polygon", 6, "0xc2132D05D31c914a87C6611C10748AEb04B58e8F", "0x3c499c542cEF5E3811e1192ce70d8cC03d5c3359"},
	{"optimism", 6, "0x94b008aA00579c1307B0EF2c499aD98a8CE58e58", "0x0b2C639c533813f4Aa9D7837CAf62653d097Ff85"},
	{"bsc", 18, "0x55d398326f99059fF775485246999027B3197955", "0x8AC76a51cc950d9822D68b83fE1Ad97B32Cd580d"},
	{"avalanche", 6, "0x9702230A8Ea53601f5E2252422904b26e46624aE", "0xB97EF9Ef8734C71904D8002F8b6Bc66Dd9c48a6E"},
	{"solana", 6, "Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB", "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"},
	{"tron", 6, "TR7NHqjeKQxGTCi8q8ZY4pL8otSzgjLj6t", "TEkxiTehnzSmSe2XqrBj4w32RUN966rdz8"},
	{"sui", 6, "0xc060006111016b8a020ad5b33834984a437aaa7d3c74c18e09a95d48aceab08c", "0x5d4b302506645c37ff133b98c4b50a5ae14841659738d6d733d59d0d2177a1ba"},
	{"near", 6, "usdt.tether-token.near", "usdc.wormhole.near"},
	{"cronos", 6, "0x66e428c3f67a68878562e79A0234c1F83c208770", "0xc21223249CA28397B4B651180d9e48052f83B10"},
	{"base", 6, "0xd9aAEc86B65D86f6A7B5B1b0c42FFA531710b6CA", "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913"},
	{"gnosis", 6, "0x4ECaBa5870353805a9F068101A40E0f32ed605C6", "0xDDb64fE46a91D46ee29420539FC25FD07c5FEa3E"},
	{"fantom", 6, "0x049d68029688eAbF473097a2fC38ef61633A3C7A", "0x04068DA6C83AFCFA0e13ba15A6696662335D5B75"},
	{"polygon-zkevm", 6, "0x1E4a5963aBFD975d8c9021ce480b42188849D413", "0xA8CE8aee21bC2A48a5EF670af4667839C824C82b"},
	{"zksync", 6, "0x493257fD37EDB34451f62EDf8D2a0C418852BA24", "0x3355df6D4c9C3035724Fd0e3914dE96A5a83aaf4"},
	{"linea", 6, "0xA219439258ca9da29E9Cc442AFCD604473bfF5D7", "0x176211869cA2b568f2A7D4EE941E073a821EE1ff"},
}

func defaultAssets(byID map[string]Chain) []Asset {
	assets := make([]Asset, 0, len(stables)*2)
	for _, s := range stables {
		chain := byID[s.chainID]
		assets = append(assets,
			Asset{Symbol: "USDT", Name: "Tether", Chain: chain, Decimals: s.decimals, ContractAddress: s.usdt},
			Asset{Symbol: "USDC", Name: "USD Coin", Chain: chain, Decimals: s.decimals, ContractAddress: s.usdc},
		)
	}
	return assets
}
