package endpoint

import (
	"net/http"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/chaincfg"

	"github.com/kbukum/esplora/errors"
)

const (
	txid      = "4a5e1e4baab89f3a32518a88c31bc87f618f76673e2cc77ab2127b7afdeda33b"
	blockHash = "000000000019d6689c085ae165831e934ff763ae46a2a6c172b3f1b60a8ce26f"
	addr      = "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa"
)

func TestCatalog_Paths(t *testing.T) {
	height := uint32(840000)
	mainnet := &chaincfg.MainNetParams
	must := func(d Descriptor, err error) Descriptor {
		t.Helper()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return d
	}

	tests := []struct {
		name   string
		desc   Descriptor
		method string
		path   string
		kind   Kind
	}{
		{"tx info", must(TxInfo(txid)), http.MethodGet, "/tx/" + txid, KindJSON},
		{"tx status", must(TxStatus(txid)), http.MethodGet, "/tx/" + txid + "/status", KindJSON},
		{"tx raw", must(TxRaw(txid)), http.MethodGet, "/tx/" + txid + "/raw", KindRaw},
		{"merkle proof", must(MerkleProof(txid)), http.MethodGet, "/tx/" + txid + "/merkle-proof", KindJSON},
		{"merkle block", must(MerkleBlock(txid)), http.MethodGet, "/tx/" + txid + "/merkleblock-proof", KindText},
		{"outspend", must(OutputStatus(txid, 7)), http.MethodGet, "/tx/" + txid + "/outspend/7", KindJSON},
		{"block", must(BlockSummary(blockHash)), http.MethodGet, "/block/" + blockHash, KindJSON},
		{"block status", must(BlockStatus(blockHash)), http.MethodGet, "/block/" + blockHash + "/status", KindJSON},
		{"block header", must(BlockHeader(blockHash)), http.MethodGet, "/block/" + blockHash + "/header", KindText},
		{"block raw", must(BlockRaw(blockHash)), http.MethodGet, "/block/" + blockHash + "/raw", KindRaw},
		{"block txid", must(BlockTxid(blockHash, 0)), http.MethodGet, "/block/" + blockHash + "/txid/0", KindText},
		{"block height", BlockHash(840000), http.MethodGet, "/block-height/840000", KindText},
		{"tip hash", TipHash(), http.MethodGet, "/blocks/tip/hash", KindText},
		{"tip height", TipHeight(), http.MethodGet, "/blocks/tip/height", KindText},
		{"blocks", Blocks(nil), http.MethodGet, "/blocks", KindJSON},
		{"blocks at", Blocks(&height), http.MethodGet, "/blocks/840000", KindJSON},
		{"address", must(AddressStats(addr, mainnet)), http.MethodGet, "/address/" + addr, KindJSON},
		{"address txs", must(AddressTxs(addr, mainnet, "")), http.MethodGet, "/address/" + addr + "/txs", KindJSON},
		{"address txs chain", must(AddressTxs(addr, mainnet, txid)), http.MethodGet, "/address/" + addr + "/txs/chain/" + txid, KindJSON},
		{"address utxo", must(AddressUtxos(addr, mainnet)), http.MethodGet, "/address/" + addr + "/utxo", KindJSON},
		{"scripthash txs", must(ScriptHashTxs(txid, "")), http.MethodGet, "/scripthash/" + txid + "/txs", KindJSON},
		{"scripthash utxo", must(ScriptHashUtxos(txid)), http.MethodGet, "/scripthash/" + txid + "/utxo", KindJSON},
		{"fee estimates", FeeEstimates(), http.MethodGet, "/fee-estimates", KindJSON},
		{"mempool", Mempool(), http.MethodGet, "/mempool", KindJSON},
		{"broadcast", must(Broadcast([]byte{0x01, 0xab})), http.MethodPost, "/tx", KindText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.desc.Method != tt.method {
				t.Errorf("expected method %s, got %s", tt.method, tt.desc.Method)
			}
			if tt.desc.Path != tt.path {
				t.Errorf("expected path %s, got %s", tt.path, tt.desc.Path)
			}
			if tt.desc.Kind != tt.kind {
				t.Errorf("expected kind %s, got %s", tt.kind, tt.desc.Kind)
			}
			if tt.desc.Op == "" {
				t.Error("expected operation name")
			}
		})
	}
}

func TestCatalog_TxidVerbatim(t *testing.T) {
	d, err := TxInfo(txid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(d.Path, txid) {
		t.Errorf("expected txid verbatim in %s", d.Path)
	}
	upper := strings.ToUpper(txid)
	d, err = TxStatus(upper)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(d.Path, upper) {
		t.Errorf("expected txid case preserved in %s", d.Path)
	}
}

// generatorPubKey is the compressed secp256k1 generator point.
const generatorPubKey = "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"

func TestCatalog_InvalidParams(t *testing.T) {
	mainnet := &chaincfg.MainNetParams
	tests := []struct {
		name string
		call func() (Descriptor, error)
	}{
		{"short txid", func() (Descriptor, error) { return TxInfo(txid[:63]) }},
		{"long txid", func() (Descriptor, error) { return TxStatus(txid + "0") }},
		{"non hex txid", func() (Descriptor, error) { return TxRaw(strings.Repeat("g", 64)) }},
		{"path injection", func() (Descriptor, error) { return TxInfo("../../" + txid[6:]) }},
		{"empty hash", func() (Descriptor, error) { return BlockSummary("") }},
		{"bad hash", func() (Descriptor, error) { return BlockTxid("xyz", 0) }},
		{"bad scripthash", func() (Descriptor, error) { return ScriptHashUtxos("00") }},
		{"bad last seen", func() (Descriptor, error) { return ScriptHashTxs(txid, "nope") }},
		{"empty address", func() (Descriptor, error) { return AddressStats("", mainnet) }},
		{"garbage address", func() (Descriptor, error) { return AddressUtxos("not-an-address", mainnet) }},
		{"wrong network", func() (Descriptor, error) { return AddressStats(addr, &chaincfg.TestNet3Params) }},
		{"compressed pubkey", func() (Descriptor, error) { return AddressUtxos(generatorPubKey, mainnet) }},
		{"pubkey history", func() (Descriptor, error) { return AddressTxs(generatorPubKey, mainnet, "") }},
		{"empty broadcast", func() (Descriptor, error) { return Broadcast(nil) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := tt.call()
			if !errors.IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if d.Path != "" || d.Method != "" {
				t.Errorf("expected empty descriptor, got %+v", d)
			}
		})
	}
}

func TestBroadcast_Body(t *testing.T) {
	d, err := Broadcast([]byte{0x02, 0x00, 0xff})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(d.Body) != "0200ff" {
		t.Errorf("expected lowercase hex body, got %q", d.Body)
	}
	if d.ContentType != "text/plain" {
		t.Errorf("expected text/plain, got %s", d.ContentType)
	}
	if d.IsIdempotent() {
		t.Error("broadcast must not be idempotent")
	}
}

func TestDescriptor_URL(t *testing.T) {
	d := Descriptor{
		Path:  "/blocks",
		Query: []QueryParam{{"z", "1"}, {"a", "x y"}},
	}
	got := d.URL("https://blockstream.info/api/")
	want := "https://blockstream.info/api/blocks?z=1&a=x+y"
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
	if !TipHash().IsIdempotent() {
		t.Error("GET must be idempotent")
	}
}

func TestNetwork(t *testing.T) {
	tests := []struct {
		name string
		want *chaincfg.Params
	}{
		{"", &chaincfg.MainNetParams},
		{"mainnet", &chaincfg.MainNetParams},
		{"testnet", &chaincfg.TestNet3Params},
		{"signet", &chaincfg.SigNetParams},
		{"regtest", &chaincfg.RegressionNetParams},
	}
	for _, tt := range tests {
		got, err := Network(tt.name)
		if err != nil {
			t.Fatalf("Network(%q): %v", tt.name, err)
		}
		if got != tt.want {
			t.Errorf("Network(%q) = %s, want %s", tt.name, got.Name, tt.want.Name)
		}
	}
	if _, err := Network("litecoin"); !errors.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}
