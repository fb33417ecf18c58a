package ledgerobjects

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const escrowJSON = `{
	"Account": "rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh",
	"Amount": "10000",
	"CancelAfter": 545440232,
	"Condition": "A0258020A82A88B2DF843A54F58772E4A3861866ECDB4157645DD9AE528C1D3AEEDABAB6810120",
	"Destination": "rrrrrrrrrrrrrrrrrrrrBZbvji",
	"DestinationTag": 23480,
	"FinishAfter": 545354132,
	"Flags": 0,
	"LedgerEntryType": "Escrow",
	"OwnerNode": "0000000000000000",
	"DestinationNode": "0000000000000000",
	"PreviousTxnID": "C44F2EB84196B9AD820313DBEBA6316A15C9A2D35787579ED172B87A30131DA7",
	"PreviousTxnLgrSeq": 28991004,
	"SourceTag": 11747,
	"index": "DC5F3851D8A1AB622F957761E5963BC5BD439D5C24AC6AD7AC4523F0640244AC"
}`

const amendmentsJSON = `{
	"Amendments": [
		"42426C4D4F1009EE67080A9B7965B44656D7714D104A72F9B4369F97ABF044EE",
		"4C97EBA926031A7CF7D7B36FDE3ED66DDA5421192D63DE53FFB46E43B9DC8373"
	],
	"Flags": 0,
	"LedgerEntryType": "Amendments",
	"Majorities": [
		{"Majority": {"Amendment": "1562511F573A19AE9BD103B5D6B9E01B3B46805AEC5D3C4805C902B514399146", "CloseTime": 535589001}}
	],
	"index": "7DB0788C020F02780A673DC74757F23823FA3014C1866E72CC4CD8B226CD6EF4"
}`

func TestObjectFromJSONEscrow(t *testing.T) {
	obj, err := ObjectFromJSON([]byte(escrowJSON))
	require.NoError(t, err)

	escrow, ok := obj.(Escrow)
	require.True(t, ok)
	assert.Equal(t, EntryEscrow, escrow.EntryType())
	assert.Equal(t, "10000", escrow.Amount)
	require.NotNil(t, escrow.FinishAfter)
	assert.Equal(t, uint32(545354132), *escrow.FinishAfter)
	assert.Equal(t, uint32(28991004), escrow.PreviousTxnLgrSeq)

	out, err := json.Marshal(escrow)
	require.NoError(t, err)
	assert.JSONEq(t, escrowJSON, string(out))
}

func TestObjectFromJSONAmendments(t *testing.T) {
	obj, err := ObjectFromJSON([]byte(amendmentsJSON))
	require.NoError(t, err)

	amendments, ok := obj.(Amendments)
	require.True(t, ok)
	assert.Len(t, amendments.Amendments, 2)
	require.Len(t, amendments.Majorities, 1)
	assert.Equal(t, uint32(535589001), amendments.Majorities[0].CloseTime)

	out, err := json.Marshal(amendments)
	require.NoError(t, err)
	assert.JSONEq(t, amendmentsJSON, string(out))
}

func TestEscrowRequiredFields(t *testing.T) {
	err := Escrow{Account: "rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh", Amount: "1"}.Validate()
	require.ErrorIs(t, err, ErrInvalidObject)
	assert.Contains(t, err.Error(), "Destination")
	assert.Contains(t, err.Error(), "PreviousTxnID")
}

func TestFlagsMustBeZero(t *testing.T) {
	assert.ErrorIs(t, Amendments{Flags: 1}.Validate(), ErrInvalidObject)
	assert.NoError(t, Amendments{}.Validate())
}

func TestMajorityRequiresBothFields(t *testing.T) {
	a := Amendments{Majorities: []Majority{{Amendment: "AB"}}}
	err := a.Validate()
	require.ErrorIs(t, err, ErrInvalidObject)
	assert.Contains(t, err.Error(), "CloseTime")
}

func TestUnknownEntryType(t *testing.T) {
	_, err := ObjectFromJSON([]byte(`{"LedgerEntryType":"Offer"}`))
	assert.ErrorIs(t, err, ErrUnknownEntryType)
}

func TestMetadataFieldsAreOptional(t *testing.T) {
	var md MDEscrowFields
	require.NoError(t, json.Unmarshal([]byte(`{"Amount":"5"}`), &md))
	require.NotNil(t, md.Amount)
	assert.Equal(t, "5", *md.Amount)
	assert.Nil(t, md.Account)
	assert.Nil(t, md.Flags)

	var amd MDAmendmentsFields
	require.NoError(t, json.Unmarshal([]byte(`{"Majorities":[{"Majority":{"Amendment":"AB","CloseTime":1}}]}`), &amd))
	require.Len(t, amd.Majorities, 1)
	assert.Equal(t, "AB", amd.Majorities[0].Amendment)
	assert.Nil(t, amd.Flags)
}
