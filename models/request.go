package models

type DisperseEthRequest struct {
	To       []string `json:"to" binding:"required"`
	Amounts  []string `json:"amounts" binding:"required"`
	Percents *string  `json:"percents"`
}

type DisperseErc20Request struct {
	Tokens   []string `json:"tokens" binding:"required"`
	To       []string `json:"to" binding:"required"`
	Amounts  []string `json:"amounts" binding:"required"`
	Percents *string  `json:"percents"`
}

type CollectEthRequest struct {
	Amount   string  `json:"amount" binding:"required"`
	Percents *string `json:"percents"`
}

type CollectErc20Request struct {
	Token    string  `json:"token" binding:"required"`
	Amount   string  `json:"amount" binding:"required"`
	Percents *string `json:"percents"`
}

type ApiResponse struct {
	TxHashes []string `json:"tx_hashes"`
}
