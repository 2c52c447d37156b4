package ring

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/f3rmion/ringsig/group"
)

// chain is one instance of the decoy-chained challenge walk. Member j
// contributes the commitments
//
//	L_j = s_j·G + c_j·P_j
//	R_j = s_j·B_j + c_j·I
//
// and c_{j+1} = H(seed, j, P_j, L_j, R_j). B_j is Hp(P_j) for ring
// signatures and the shared input point for ring VRF proofs.
type chain struct {
	ctx   *Context
	ring  []*Public
	bases []group.Point
	image group.Point
	seed  []byte
}

func (ch *chain) base(j int) group.Point {
	if len(ch.bases) == 1 {
		return ch.bases[0]
	}
	return ch.bases[j]
}

// challenge derives c_{j+1} from member j's commitments.
func (ch *chain) challenge(j int, l, r group.Point) group.Scalar {
	return ch.ctx.hashToScalar(tagChallenge,
		ch.seed,
		u32le(uint32(j)),
		ch.ring[j].enc,
		l.Bytes(),
		r.Bytes(),
	)
}

// step recomputes member j's commitments from (s_j, c_j) and returns
// c_{j+1}.
func (ch *chain) step(j int, s, c group.Scalar) group.Scalar {
	g := ch.ctx.group

	sG := g.NewPoint().ScalarMult(s, g.Generator())
	cP := g.NewPoint().ScalarMult(c, ch.ring[j].point)
	l := g.NewPoint().Add(sG, cP)

	sB := g.NewPoint().ScalarMult(s, ch.base(j))
	cI := g.NewPoint().ScalarMult(c, ch.image)
	r := g.NewPoint().Add(sB, cI)

	return ch.challenge(j, l, r)
}

// seedFor binds the proof mode, the ring, the image and the
// caller-supplied data.
func (c *Context) seedFor(mode uint32, ringDigest []byte, image group.Point, data ...[]byte) []byte {
	input := make([][]byte, 0, len(data)+3)
	input = append(input, u32le(mode), ringDigest, image.Bytes())
	for _, d := range data {
		input = append(input, lengthPrefixed(d))
	}
	return c.hash(tagSeed, input...)
}

// keyImageBases returns Hp(P_j) for every member, hashing members in
// parallel.
func (c *Context) keyImageBases(ring []*Public) ([]group.Point, error) {
	bases := make([]group.Point, len(ring))
	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for j, pk := range ring {
		eg.Go(func() error {
			b, err := c.hashToPoint(tagKeyImage, pk.enc)
			if err != nil {
				return fmt.Errorf("ring member %d: %w", j, err)
			}
			bases[j] = b
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return bases, nil
}

// vrfInputPoint maps VRF input data to the shared base point.
func (c *Context) vrfInputPoint(input []byte) (group.Point, error) {
	return c.hashToPoint(tagVRFInput, lengthPrefixed(input))
}
