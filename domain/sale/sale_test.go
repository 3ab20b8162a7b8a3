package sale

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bidmarket/goapi/domain"
)

func TestMakeListingId(t *testing.T) {
	req := require.New(t)

	id := MakeListingId("nft.market", "token-1")
	req.Equal(ListingId("nft.market:token-1"), id)
}

func TestAcceptsPayToken(t *testing.T) {
	req := require.New(t)
	usdt := domain.AccountId("usdt.tether-token")

	s := &Sale{Kind: KindWithPayments, PayToken: &usdt}
	req.True(s.AcceptsPayToken("usdt.tether-token"))
	req.True(s.AcceptsPayToken("USDT.Tether-Token"))
	req.False(s.AcceptsPayToken("wrap.near"))

	// a sale listed without a payment mechanism accepts nothing
	s = &Sale{Kind: KindNoPayments}
	req.False(s.AcceptsPayToken("usdt.tether-token"))
}

func TestPutBid(t *testing.T) {
	req := require.New(t)

	s := &Sale{Bids: []Bid{}}

	s.PutBid(Bid{PayToken: "usdt.tether-token", Bidder: "alice", Price: "100"})
	req.Len(s.Bids, 1)

	// same pay token replaces the slot
	s.PutBid(Bid{PayToken: "usdt.tether-token", Bidder: "bob", Price: "150"})
	req.Len(s.Bids, 1)
	req.Equal(domain.AccountId("bob"), s.Bids[0].Bidder)
	req.Equal(domain.TokenAmount("150"), s.Bids[0].Price)

	// a different pay token gets its own slot
	s.PutBid(Bid{PayToken: "wrap.near", Bidder: "carol", Price: "2"})
	req.Len(s.Bids, 2)

	b, ok := s.BidFor("wrap.near")
	req.True(ok)
	req.Equal(domain.AccountId("carol"), b.Bidder)

	_, ok = s.BidFor("dai.token")
	req.False(ok)
}

func TestIsExpired(t *testing.T) {
	req := require.New(t)
	now := time.Now()

	s := &Sale{EndAt: now.Add(time.Minute)}
	req.False(s.IsExpired(now))

	s = &Sale{EndAt: now.Add(-time.Minute)}
	req.True(s.IsExpired(now))

	// the boundary instant is still live
	s = &Sale{EndAt: now}
	req.False(s.IsExpired(now))
}
