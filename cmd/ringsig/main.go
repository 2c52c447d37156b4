package main

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/f3rmion/ringsig/ring"
)

const usageText = `usage: ringsig <command> [options]

Commands:
  keygen      Generate a secret and print "secret public" in hex
  public      Print the public key of -secret
  sign        Sign -m with -secret at -index of -ring
  verify      Verify -proof over -m against -ring
  link        Report whether -proof1 and -proof2 share a key image
  vrf-sign    Evaluate the VRF on -input (ring proof, or -ietf)
  vrf-verify  Verify a VRF proof and print the output hash

Common flags:
  -curve   bandersnatch | babyjubjub | secp256k1   (default bandersnatch)
  -hash    blake2b512 | sha3-512 | sha512          (default blake2b512)
  -domain  transcript domain prefix                (default RINGSIG-LSAG-v1)

Rings are comma-separated hex public keys.`

// errInvalid is returned by verify and vrf-verify for a proof that does not
// verify; main exits with status 1 instead of logging it.
var errInvalid = errors.New("invalid")

var commands = map[string]func(args []string, w io.Writer) error{
	"keygen":     runKeygen,
	"public":     runPublic,
	"sign":       runSign,
	"verify":     runVerify,
	"link":       runLink,
	"vrf-sign":   runVRFSign,
	"vrf-verify": runVRFVerify,
}

type common struct {
	curve  *string
	hash   *string
	domain *string
}

func newFlagSet(name string) (*flag.FlagSet, *common) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	c := &common{
		curve:  fs.String("curve", "bandersnatch", "group"),
		hash:   fs.String("hash", "blake2b512", "transcript hash"),
		domain: fs.String("domain", ring.DefaultPrefix, "transcript domain prefix"),
	}
	return fs, c
}

func (c *common) context() (*ring.Context, error) {
	g, ok := ring.GroupByName(*c.curve)
	if !ok {
		return nil, fmt.Errorf("unknown curve %q", *c.curve)
	}
	h, ok := ring.HasherByName(*c.hash, *c.domain)
	if !ok {
		return nil, fmt.Errorf("unknown hash %q", *c.hash)
	}
	return ring.NewContext(ring.Config{Group: g, Hasher: h})
}

// parse parses args into fs and builds the context selected by c.
func parse(fs *flag.FlagSet, c *common, args []string) (*ring.Context, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return c.context()
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("ringsig: ")

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usageText)
		os.Exit(2)
	}
	run, ok := commands[os.Args[1]]
	if !ok {
		fmt.Fprintln(os.Stderr, usageText)
		os.Exit(2)
	}
	err := run(os.Args[2:], os.Stdout)
	switch {
	case err == nil:
	case errors.Is(err, errInvalid):
		fmt.Println("invalid")
		os.Exit(1)
	case errors.Is(err, flag.ErrHelp):
		os.Exit(2)
	default:
		log.Fatalf("%s: %v", os.Args[1], err)
	}
}

func runKeygen(args []string, w io.Writer) error {
	fs, c := newFlagSet("keygen")
	ctx, err := parse(fs, c, args)
	if err != nil {
		return err
	}

	sk, err := ring.GenerateSecret(ctx, rand.Reader)
	if err != nil {
		return err
	}
	defer sk.Zeroize()
	_, err = fmt.Fprintf(w, "%x %s\n", sk.Bytes(), sk.Public())
	return err
}

func runPublic(args []string, w io.Writer) error {
	fs, c := newFlagSet("public")
	secretHex := fs.String("secret", "", "secret key (hex)")
	ctx, err := parse(fs, c, args)
	if err != nil {
		return err
	}

	sk, err := decodeSecret(ctx, *secretHex)
	if err != nil {
		return err
	}
	defer sk.Zeroize()
	_, err = fmt.Fprintln(w, sk.Public())
	return err
}

func runSign(args []string, w io.Writer) error {
	fs, c := newFlagSet("sign")
	secretHex := fs.String("secret", "", "secret key (hex)")
	ringFlag := fs.String("ring", "", "comma-separated public keys (hex)")
	idx := fs.Int("index", -1, "position of the signer's key in the ring")
	msg := fs.String("m", "", "message")
	ctx, err := parse(fs, c, args)
	if err != nil {
		return err
	}

	p, err := newProver(ctx, *secretHex, *ringFlag, *idx)
	if err != nil {
		return err
	}
	defer p.Close()

	proof, err := p.Sign(rand.Reader, []byte(*msg))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%x\n", proof.Bytes())
	return err
}

func runVerify(args []string, w io.Writer) error {
	fs, c := newFlagSet("verify")
	ringFlag := fs.String("ring", "", "comma-separated public keys (hex)")
	msg := fs.String("m", "", "message")
	proofHex := fs.String("proof", "", "proof (hex)")
	ctx, err := parse(fs, c, args)
	if err != nil {
		return err
	}

	members, err := decodeRing(ctx, *ringFlag)
	if err != nil {
		return err
	}
	data, err := decodeHex("proof", *proofHex)
	if err != nil {
		return err
	}
	err = ring.VerifyBytes(ctx, members, []byte(*msg), data)
	if errors.Is(err, ring.ErrInvalidProof) {
		return errInvalid
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, "valid")
	return err
}

func runLink(args []string, w io.Writer) error {
	fs, c := newFlagSet("link")
	proof1 := fs.String("proof1", "", "first proof (hex)")
	n1 := fs.Int("n1", 0, "ring size of the first proof")
	proof2 := fs.String("proof2", "", "second proof (hex)")
	n2 := fs.Int("n2", 0, "ring size of the second proof")
	ctx, err := parse(fs, c, args)
	if err != nil {
		return err
	}

	a, err := parseProof(ctx, "proof1", *proof1, *n1)
	if err != nil {
		return err
	}
	b, err := parseProof(ctx, "proof2", *proof2, *n2)
	if err != nil {
		return err
	}
	result := "unlinked"
	if ring.Linked(a, b) {
		result = "linked"
	}
	_, err = fmt.Fprintln(w, result)
	return err
}

func runVRFSign(args []string, w io.Writer) error {
	fs, c := newFlagSet("vrf-sign")
	secretHex := fs.String("secret", "", "secret key (hex)")
	ringFlag := fs.String("ring", "", "comma-separated public keys (hex)")
	idx := fs.Int("index", -1, "position of the signer's key in the ring")
	input := fs.String("input", "", "VRF input")
	aux := fs.String("aux", "", "additional data bound to the proof")
	ietf := fs.Bool("ietf", false, "produce a non-anonymous IETF proof")
	ctx, err := parse(fs, c, args)
	if err != nil {
		return err
	}

	p, err := newProver(ctx, *secretHex, *ringFlag, *idx)
	if err != nil {
		return err
	}
	defer p.Close()

	if *ietf {
		proof, err := p.IETFSign(rand.Reader, []byte(*input), []byte(*aux))
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%x %x\n", proof.Bytes(), ctx.OutputHash(proof.Output))
		return err
	}
	proof, err := p.RingVRFSign(rand.Reader, []byte(*input), []byte(*aux))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%x %x\n", proof.Bytes(), ctx.OutputHash(proof.KeyImage))
	return err
}

func runVRFVerify(args []string, w io.Writer) error {
	fs, c := newFlagSet("vrf-verify")
	ringFlag := fs.String("ring", "", "comma-separated public keys (hex)")
	input := fs.String("input", "", "VRF input")
	aux := fs.String("aux", "", "additional data bound to the proof")
	proofHex := fs.String("proof", "", "proof (hex)")
	ietf := fs.Bool("ietf", false, "verify a non-anonymous IETF proof")
	idx := fs.Int("index", -1, "signer position, for -ietf")
	ctx, err := parse(fs, c, args)
	if err != nil {
		return err
	}

	members, err := decodeRing(ctx, *ringFlag)
	if err != nil {
		return err
	}
	v, err := ring.NewVerifier(ctx, members)
	if err != nil {
		return err
	}
	data, err := decodeHex("proof", *proofHex)
	if err != nil {
		return err
	}

	var out [32]byte
	if *ietf {
		proof, perr := ring.ParseIETFProof(ctx, data)
		if perr != nil {
			return fmt.Errorf("proof: %w", perr)
		}
		out, err = v.IETFVerify([]byte(*input), []byte(*aux), proof, *idx)
	} else {
		proof, perr := ring.ParseProof(ctx, data, v.Size())
		if perr != nil {
			return fmt.Errorf("proof: %w", perr)
		}
		out, err = v.RingVRFVerify([]byte(*input), []byte(*aux), proof)
	}
	if errors.Is(err, ring.ErrInvalidProof) {
		return errInvalid
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%x\n", out)
	return err
}

func newProver(ctx *ring.Context, secretHex, ringFlag string, idx int) (*ring.Prover, error) {
	sk, err := decodeSecret(ctx, secretHex)
	if err != nil {
		return nil, err
	}
	defer sk.Zeroize()

	members, err := decodeRing(ctx, ringFlag)
	if err != nil {
		return nil, err
	}
	return ring.NewProver(ctx, sk, members, idx)
}

func decodeSecret(ctx *ring.Context, s string) (*ring.Secret, error) {
	b, err := decodeHex("secret", s)
	if err != nil {
		return nil, err
	}
	defer clear(b)
	return ring.SecretFromBytes(ctx, b)
}

func decodeRing(ctx *ring.Context, s string) ([]*ring.Public, error) {
	var members []*ring.Public
	for i, part := range strings.Split(s, ",") {
		b, err := decodeHex("ring", strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		pk, err := ring.PublicFromBytes(ctx, b)
		if err != nil {
			return nil, fmt.Errorf("ring member %d: %w", i, err)
		}
		members = append(members, pk)
	}
	return members, nil
}

func parseProof(ctx *ring.Context, name, s string, n int) (*ring.Proof, error) {
	b, err := decodeHex(name, s)
	if err != nil {
		return nil, err
	}
	proof, err := ring.ParseProof(ctx, b, n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return proof, nil
}

func decodeHex(name, s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("-%s: %w", name, err)
	}
	return b, nil
}
