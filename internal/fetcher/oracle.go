package fetcher

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/rs/zerolog"
)

const (
	latestAnswerMethod = "getChainlinkDataFeedLatestAnswer"
	oracleABIJSON      = `[{"inputs":[{"internalType":"string","name":"pair","type":"string"}],"name":"getChainlinkDataFeedLatestAnswer","outputs":[{"internalType":"int256","name":"","type":"int256"}],"stateMutability":"view","type":"function"}]`
)

var (
	oracleABI abi.ABI
)

func init() {
	parsed, err := abi.JSON(strings.NewReader(oracleABIJSON))
	if err != nil {
		panic("failed to parse oracle ABI: " + err.Error())
	}
	oracleABI = parsed
}

// OracleOptions parameterise the on-chain reader.
type OracleOptions struct {
	RPCURL  string
	Address string
	// ChainID, when non-zero, must match the provider's chain.
	ChainID uint64
	// Timeout bounds a single call; zero leaves the call unbounded.
	Timeout time.Duration
}

// Oracle reads the latest feed answer from the price oracle contract.
type Oracle struct {
	opts      OracleOptions
	logger    zerolog.Logger
	caller    ethereum.ContractCaller
	client    *ethclient.Client
	clientMux sync.Mutex
}

// NewOracle builds a reader that dials opts.RPCURL on first use.
func NewOracle(opts OracleOptions, logger zerolog.Logger) *Oracle {
	return &Oracle{opts: opts, logger: logger.With().Str("component", "oracle").Logger()}
}

// NewOracleWithCaller builds a reader on top of an existing contract caller.
func NewOracleWithCaller(opts OracleOptions, caller ethereum.ContractCaller, logger zerolog.Logger) *Oracle {
	o := NewOracle(opts, logger)
	o.caller = caller
	return o
}

// LatestAnswer calls getChainlinkDataFeedLatestAnswer(pair) at the latest block.
func (o *Oracle) LatestAnswer(ctx context.Context, pair string) (*big.Int, error) {
	if !common.IsHexAddress(o.opts.Address) {
		return nil, fmt.Errorf("invalid oracle contract address %q", o.opts.Address)
	}

	if o.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.opts.Timeout)
		defer cancel()
	}

	caller, err := o.getCaller(ctx)
	if err != nil {
		return nil, err
	}

	addr := common.HexToAddress(o.opts.Address)
	payload, err := oracleABI.Pack(latestAnswerMethod, pair)
	if err != nil {
		return nil, err
	}

	res, err := caller.CallContract(ctx, ethereum.CallMsg{To: &addr, Data: payload}, nil)
	if err != nil {
		return nil, err
	}
	if len(res) == 0 {
		return nil, errors.New("oracle returned empty response")
	}

	outputs, err := oracleABI.Unpack(latestAnswerMethod, res)
	if err != nil {
		return nil, err
	}
	if len(outputs) != 1 {
		return nil, errors.New("unexpected latest answer response")
	}

	answer, ok := outputs[0].(*big.Int)
	if !ok {
		return nil, errors.New("failed to decode latest answer output")
	}
	return answer, nil
}

// Close releases the dialled RPC client, if any.
func (o *Oracle) Close() {
	o.clientMux.Lock()
	defer o.clientMux.Unlock()

	if o.client != nil {
		o.client.Close()
		o.client = nil
		o.caller = nil
	}
}

func (o *Oracle) getCaller(ctx context.Context) (ethereum.ContractCaller, error) {
	o.clientMux.Lock()
	defer o.clientMux.Unlock()

	if o.caller != nil {
		return o.caller, nil
	}
	if o.opts.RPCURL == "" {
		return nil, ErrNoProvider
	}

	client, err := ethclient.DialContext(ctx, o.opts.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoProvider, err)
	}

	if o.opts.ChainID != 0 {
		id, err := client.ChainID(ctx)
		if err != nil {
			client.Close()
			return nil, fmt.Errorf("query chain id: %w", err)
		}
		if id.Uint64() != o.opts.ChainID {
			client.Close()
			return nil, fmt.Errorf("provider is on chain %s, expected %d", id, o.opts.ChainID)
		}
	}

	o.logger.Debug().Str("rpc_url", o.opts.RPCURL).Msg("connected to provider")
	o.client = client
	o.caller = client
	return client, nil
}

var _ ContractReader = (*Oracle)(nil)
