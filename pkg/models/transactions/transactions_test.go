package transactions

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	genesis = "rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh"
	dest    = "rrrrrrrrrrrrrrrrrrrrBZbvji"
)

func TestNewPayment(t *testing.T) {
	p, err := NewPayment(genesis, dest, XRPDrops(1000))
	require.NoError(t, err)
	assert.Equal(t, TypePayment, p.Common().TransactionType)
	assert.Equal(t, "1000", p.Amount.Drops)
}

func TestPaymentValidation(t *testing.T) {
	usd := IssuedCurrency("USD", genesis, "10")

	tests := []struct {
		name    string
		payment Payment
		fields  []string
	}{
		{
			name:    "missing account",
			payment: Payment{Amount: XRPDrops(1), Destination: dest},
			fields:  []string{"Account"},
		},
		{
			name:    "missing destination and amount",
			payment: Payment{BaseTx: BaseTx{Account: genesis}},
			fields:  []string{"Amount", "Destination"},
		},
		{
			name:    "malformed destination",
			payment: Payment{BaseTx: BaseTx{Account: genesis}, Amount: XRPDrops(1), Destination: "not-an-address"},
			fields:  []string{"Destination"},
		},
		{
			name:    "xrp to self",
			payment: Payment{BaseTx: BaseTx{Account: genesis}, Amount: XRPDrops(1), Destination: genesis},
		},
		{
			name:    "bad drops",
			payment: Payment{BaseTx: BaseTx{Account: genesis}, Amount: Amount{Drops: "1.5"}, Destination: dest},
			fields:  []string{"Amount"},
		},
		{
			name: "deliver min without partial flag",
			payment: Payment{
				BaseTx:      BaseTx{Account: genesis},
				Amount:      usd,
				Destination: dest,
				DeliverMin:  &usd,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.payment.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidTransaction)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, TypePayment, verr.Type)
			if tt.fields != nil {
				assert.ElementsMatch(t, tt.fields, verr.Fields)
			}
		})
	}
}

func TestWithCommonReturnsCopy(t *testing.T) {
	p, err := NewPayment(genesis, dest, XRPDrops(5))
	require.NoError(t, err)

	common := p.Common()
	common.Sequence = 42
	common.Fee = "12"
	updated := p.WithCommon(common)

	assert.Zero(t, p.Sequence)
	assert.Empty(t, p.Fee)
	assert.Equal(t, uint32(42), updated.Common().Sequence)
	assert.Equal(t, "12", updated.Common().Fee)
	assert.IsType(t, Payment{}, updated)
}

func TestCommonForcesTransactionType(t *testing.T) {
	p := Payment{BaseTx: BaseTx{Account: genesis, TransactionType: "Bogus"}}
	assert.Equal(t, TypePayment, p.Common().TransactionType)
	assert.Equal(t, TypePayment, p.WithCommon(BaseTx{Account: genesis}).Common().TransactionType)
}

func TestAmountJSON(t *testing.T) {
	var xrp Amount
	require.NoError(t, json.Unmarshal([]byte(`"25"`), &xrp))
	assert.True(t, xrp.IsXRP())
	assert.Equal(t, "25", xrp.Drops)

	var iou Amount
	require.NoError(t, json.Unmarshal([]byte(`{"currency":"USD","issuer":"`+genesis+`","value":"1.5"}`), &iou))
	require.False(t, iou.IsXRP())
	assert.Equal(t, "USD", iou.Issued.Currency)
	assert.NoError(t, iou.Check())

	out, err := json.Marshal(XRPDrops(7))
	require.NoError(t, err)
	assert.JSONEq(t, `"7"`, string(out))

	out, err = json.Marshal(iou)
	require.NoError(t, err)
	assert.JSONEq(t, `{"currency":"USD","issuer":"`+genesis+`","value":"1.5"}`, string(out))
}

func TestAmountCheck(t *testing.T) {
	assert.ErrorIs(t, Amount{Drops: "-1"}.Check(), ErrInvalidAmount)
	assert.ErrorIs(t, IssuedCurrency("XRP", genesis, "1").Check(), ErrInvalidAmount)
	assert.ErrorIs(t, IssuedCurrency("USD", "", "1").Check(), ErrInvalidAmount)
	assert.NoError(t, XRPDrops(0).Check())
}

func TestMemoWireFormat(t *testing.T) {
	p, err := NewPayment(genesis, dest, XRPDrops(1))
	require.NoError(t, err)
	p.Memos = []Memo{{MemoData: "68656C6C6F"}}

	out, err := json.Marshal(p)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(out, &raw))
	memos := raw["Memos"].([]any)
	require.Len(t, memos, 1)
	wrapped := memos[0].(map[string]any)
	assert.Equal(t, "68656C6C6F", wrapped["Memo"].(map[string]any)["MemoData"])

	back, err := FromJSON(out)
	require.NoError(t, err)
	assert.Equal(t, p.Memos, back.Common().Memos)
}

func TestFromJSON(t *testing.T) {
	tests := []struct {
		name string
		json string
		want TxType
	}{
		{"payment", `{"TransactionType":"Payment","Account":"` + genesis + `","Destination":"` + dest + `","Amount":"10"}`, TypePayment},
		{"account set", `{"TransactionType":"AccountSet","Account":"` + genesis + `","SetFlag":8}`, TypeAccountSet},
		{"trust set", `{"TransactionType":"TrustSet","Account":"` + genesis + `","LimitAmount":{"currency":"USD","issuer":"` + dest + `","value":"100"}}`, TypeTrustSet},
		{"escrow create", `{"TransactionType":"EscrowCreate","Account":"` + genesis + `","Destination":"` + dest + `","Amount":"10","FinishAfter":10}`, TypeEscrowCreate},
		{"escrow finish", `{"TransactionType":"EscrowFinish","Account":"` + genesis + `","Owner":"` + genesis + `","OfferSequence":7}`, TypeEscrowFinish},
		{"escrow cancel", `{"TransactionType":"EscrowCancel","Account":"` + genesis + `","Owner":"` + genesis + `","OfferSequence":7}`, TypeEscrowCancel},
		{"offer create", `{"TransactionType":"OfferCreate","Account":"` + genesis + `","TakerGets":"10","TakerPays":{"currency":"USD","issuer":"` + dest + `","value":"1"}}`, TypeOfferCreate},
		{"offer cancel", `{"TransactionType":"OfferCancel","Account":"` + genesis + `","OfferSequence":3}`, TypeOfferCancel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx, err := FromJSON([]byte(tt.json))
			require.NoError(t, err)
			assert.Equal(t, tt.want, tx.TxType())
			assert.NoError(t, tx.Validate())
		})
	}
}

func TestFromJSONUnknownType(t *testing.T) {
	_, err := FromJSON([]byte(`{"TransactionType":"NFTokenMint"}`))
	assert.ErrorIs(t, err, ErrUnknownTransactionType)

	_, err = FromJSON([]byte(`not json`))
	assert.Error(t, err)
}

func TestTypeSpecificRules(t *testing.T) {
	base := BaseTx{Account: genesis}
	rate := uint32(500)

	tests := []struct {
		name string
		tx   Transaction
	}{
		{"account set same flags", AccountSet{BaseTx: base, SetFlag: AsfDefaultRipple, ClearFlag: AsfDefaultRipple}},
		{"account set transfer rate", AccountSet{BaseTx: base, TransferRate: &rate}},
		{"trust set xrp limit", TrustSet{BaseTx: base, LimitAmount: XRPDrops(10)}},
		{"escrow create without release", EscrowCreate{BaseTx: base, Amount: XRPDrops(10), Destination: dest}},
		{"escrow create cancel before finish", EscrowCreate{BaseTx: base, Amount: XRPDrops(10), Destination: dest, FinishAfter: 20, CancelAfter: 10}},
		{"escrow create issued amount", EscrowCreate{BaseTx: base, Amount: IssuedCurrency("USD", dest, "1"), Destination: dest, FinishAfter: 1}},
		{"escrow finish condition only", EscrowFinish{BaseTx: base, Owner: genesis, OfferSequence: 1, Condition: "A0"}},
		{"escrow cancel missing sequence", EscrowCancel{BaseTx: base, Owner: genesis}},
		{"offer xrp for xrp", OfferCreate{BaseTx: base, TakerGets: XRPDrops(1), TakerPays: XRPDrops(2)}},
		{"offer cancel missing sequence", OfferCancel{BaseTx: base}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.tx.Validate(), ErrInvalidTransaction)
		})
	}
}

func TestAffectedNodeJSON(t *testing.T) {
	raw := `{"TransactionResult":"tesSUCCESS","TransactionIndex":2,"AffectedNodes":[
		{"ModifiedNode":{"LedgerEntryType":"AccountRoot","LedgerIndex":"AB","FinalFields":{"Balance":"99"},"PreviousFields":{"Balance":"100"}}},
		{"CreatedNode":{"LedgerEntryType":"Escrow","LedgerIndex":"CD","NewFields":{"Amount":"10"}}}
	],"delivered_amount":"10"}`

	var meta TransactionMetadata
	require.NoError(t, json.Unmarshal([]byte(raw), &meta))
	assert.True(t, meta.IsSuccess())
	require.Len(t, meta.AffectedNodes, 2)
	assert.Equal(t, NodeModified, meta.AffectedNodes[0].NodeType)
	assert.JSONEq(t, `{"Balance":"99"}`, string(meta.AffectedNodes[0].Fields()))
	assert.Equal(t, NodeCreated, meta.AffectedNodes[1].NodeType)
	assert.JSONEq(t, `{"Amount":"10"}`, string(meta.AffectedNodes[1].Fields()))
	require.NotNil(t, meta.DeliveredAmount)
	assert.Equal(t, "10", meta.DeliveredAmount.Drops)

	out, err := json.Marshal(meta.AffectedNodes[1])
	require.NoError(t, err)
	assert.Contains(t, string(out), `"CreatedNode"`)
}
