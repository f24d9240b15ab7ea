package cryptography

import (
	"bufio"
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	cryptoDomain "github.com/helix-rsa/helix/internal/domain/crypto"
	"github.com/helix-rsa/helix/internal/pkg/bignum"
	"github.com/helix-rsa/helix/internal/pkg/logger"
	"github.com/helix-rsa/helix/internal/pkg/numtheory"
	"github.com/helix-rsa/helix/internal/pkg/validators"
)

// ErrInvalidBitLength is returned by GenerateKeys for unsupported key sizes
var ErrInvalidBitLength = errors.New("unsupported RSA bit length")

// rsaProcessor struct that implements the RSAProcessor interface
type rsaProcessor struct {
	logger  logger.Logger
	version cryptoDomain.Version
	rand    io.Reader
}

// NewRSAProcessor creates an RSAProcessor stamping version into every file it
// writes. A nil rnd selects crypto/rand.
func NewRSAProcessor(logger logger.Logger, version cryptoDomain.Version, rnd io.Reader) (cryptoDomain.RSAProcessor, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if rnd == nil {
		rnd = rand.Reader
	}
	return &rsaProcessor{
		logger:  logger.With("component", "rsa_processor"),
		version: version,
		rand:    rnd,
	}, nil
}

// GenerateKeys generates a key pair for the requested bit length.
func (p *rsaProcessor) GenerateKeys(ctx context.Context, bitLength int) (*cryptoDomain.KeyPair, error) {
	if !validators.ValidRSABitLength(int64(bitLength)) {
		return nil, fmt.Errorf("%w: %d (expected an even value between %d and %d)",
			ErrInvalidBitLength, bitLength, validators.MinRSABitLength, validators.MaxRSABitLength)
	}

	start := time.Now()
	d, e, n, err := GenerateRSAKeys(ctx, p.rand, bitLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate RSA keys: %w", err)
	}

	p.logger.Info("Generated ", bitLength, "-bit RSA key pair in ", time.Since(start).Round(time.Millisecond))
	p.logger.Debug("Public exponent ", e, ", modulus ", n.BitLen(), " bits")
	return cryptoDomain.NewKeyPair(d, e, n, bitLength, p.version), nil
}

// ValidateKeys checks that a random value of n.BitLen()-1 bits survives an
// encrypt/decrypt round trip.
func (p *rsaProcessor) ValidateKeys(pair *cryptoDomain.KeyPair) (err error) {
	defer bignum.Recover(&err)

	if err := pair.Public.Validate(); err != nil {
		return err
	}
	if err := pair.Private.Validate(); err != nil {
		return err
	}

	n := pair.Public.Modulus
	x, err := bignum.Random(p.rand, n.BitLen()-1)
	if err != nil {
		return fmt.Errorf("failed to draw test value: %w", err)
	}

	c := numtheory.ExponentMod(x, pair.Public.Exponent, n)
	if !numtheory.ExponentMod(c, pair.Private.Exponent, pair.Private.Modulus).Equal(x) {
		p.logger.Error("Key pair failed round-trip validation")
		return cryptoDomain.ErrKeyValidation
	}

	p.logger.Info("Key pair passed round-trip validation")
	return nil
}

// Encrypt writes the version record followed by one block per plaintext chunk.
func (p *rsaProcessor) Encrypt(ctx context.Context, r io.Reader, w io.Writer, key *cryptoDomain.Key, progress cryptoDomain.ProgressFunc) (err error) {
	defer bignum.Recover(&err)

	if err := key.Validate(); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	if _, err := p.version.WriteTo(bw); err != nil {
		return fmt.Errorf("failed to write version record: %w", err)
	}

	chunk := make([]byte, key.ChunkSize())
	block := make([]byte, bignum.BlockHeaderSize+2*key.Modulus.NumSegments())
	x := bignum.Zero()

	var blocks int
	var total int64
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, err := x.ReadPlainChunk(r, chunk)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read plaintext: %w", err)
		}

		y := numtheory.ExponentMod(x, key.Exponent, key.Modulus)
		if err := y.WriteCipherBlock(bw, block, n); err != nil {
			return fmt.Errorf("failed to write block %d: %w", blocks, err)
		}

		blocks++
		total += int64(n)
		if progress != nil {
			progress(blocks, total)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush ciphertext: %w", err)
	}

	p.logger.Info("Encrypted ", total, " bytes in ", blocks, " blocks with ", key.Type(), " key")
	return nil
}

// Decrypt reads the version record and writes the plaintext of every block.
func (p *rsaProcessor) Decrypt(ctx context.Context, r io.Reader, w io.Writer, key *cryptoDomain.Key, progress cryptoDomain.ProgressFunc) (version cryptoDomain.Version, err error) {
	defer bignum.Recover(&err)

	if err := key.Validate(); err != nil {
		return version, err
	}

	br := bufio.NewReader(r)
	if _, err := version.ReadFrom(br); err != nil {
		return version, fmt.Errorf("failed to read version record: %w", err)
	}
	p.logger.Debug("Ciphertext version ", version)

	bw := bufio.NewWriter(w)
	capacity := 2 * key.Modulus.NumSegments()
	cipherBuf := make([]byte, capacity)
	plainBuf := make([]byte, capacity)
	x := bignum.Zero()

	var blocks int
	var total int64
	for {
		if err := ctx.Err(); err != nil {
			return version, err
		}

		plainLen, err := x.ReadCipherBlock(br, cipherBuf)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return version, fmt.Errorf("failed to read block %d: %w", blocks, err)
		}
		if plainLen > key.ChunkSize() {
			return version, fmt.Errorf("block %d declares %d plaintext bytes, key allows %d: %w",
				blocks, plainLen, key.ChunkSize(), bignum.ErrMalformedBlock)
		}

		y := numtheory.ExponentMod(x, key.Exponent, key.Modulus)
		if err := y.WritePlainBytes(bw, plainBuf, plainLen); err != nil {
			return version, fmt.Errorf("failed to write block %d: %w", blocks, err)
		}

		blocks++
		total += int64(plainLen)
		if progress != nil {
			progress(blocks, total)
		}
	}

	if err := bw.Flush(); err != nil {
		return version, fmt.Errorf("failed to flush plaintext: %w", err)
	}

	p.logger.Info("Decrypted ", total, " bytes in ", blocks, " blocks with ", key.Type(), " key")
	return version, nil
}

// EncryptFile encrypts the file at srcPath into dstPath.
func (p *rsaProcessor) EncryptFile(ctx context.Context, srcPath, dstPath string, key *cryptoDomain.Key, progress cryptoDomain.ProgressFunc) error {
	return withFiles(srcPath, dstPath, func(src io.Reader, dst io.Writer) error {
		return p.Encrypt(ctx, src, dst, key, progress)
	})
}

// DecryptFile decrypts the file at srcPath into dstPath.
func (p *rsaProcessor) DecryptFile(ctx context.Context, srcPath, dstPath string, key *cryptoDomain.Key, progress cryptoDomain.ProgressFunc) (cryptoDomain.Version, error) {
	var version cryptoDomain.Version
	err := withFiles(srcPath, dstPath, func(src io.Reader, dst io.Writer) error {
		var err error
		version, err = p.Decrypt(ctx, src, dst, key, progress)
		return err
	})
	return version, err
}

// withFiles opens srcPath, creates dstPath and runs fn over them. The
// output file is removed when fn fails.
func withFiles(srcPath, dstPath string, fn func(io.Reader, io.Writer) error) (err error) {
	src, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := dst.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
		if err != nil {
			_ = os.Remove(dstPath)
		}
	}()

	return fn(src, dst)
}
