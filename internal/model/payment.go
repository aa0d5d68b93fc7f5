package model

// PaymentIntent holds the server-supplied transaction parameters consumed
// immediately to build a redirect form. Never persisted.
type PaymentIntent struct {
	Key         string `json:"key"`
	TxnID       string `json:"txnid"`
	Amount      string `json:"amount"`
	ProductInfo string `json:"productinfo"`
	FirstName   string `json:"firstname"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	UDF1        string `json:"udf1"`
	UDF2        string `json:"udf2"`
	UDF3        string `json:"udf3"`
	UDF4        string `json:"udf4"`
	UDF5        string `json:"udf5"`
	Hash        string `json:"hash"`
	SuccessURL  string `json:"surl"`
	FailureURL  string `json:"furl"`
}

// FormField is one hidden input of the redirect form. Field order is
// preserved so the rendered form is stable.
type FormField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// RedirectForm describes a POST the browser must perform as a full-page
// navigation to the hosted payment gateway.
type RedirectForm struct {
	Action string      `json:"action"`
	Fields []FormField `json:"fields"`
}
