package classpath

import (
	"crypto/x509"
	"fmt"

	"go.mozilla.org/pkcs7"
)

// SignatureBlock is the parsed content of a jar's META-INF/*.{RSA,DSA,EC}
// signature block, a PKCS#7 SignedData structure binding the archive's
// digest manifest to a signer certificate, the same shape Authenticode
// uses to sign a PE's certificate table (saferwall-pe's security.go,
// parseSecurityDirectory).
type SignatureBlock struct {
	Signer *x509.Certificate
}

// ParseSignatureBlock parses a DER-encoded PKCS#7 signature block. It does
// not itself check the signature against the archive's manifest digest;
// VerifySignedJar does that.
func ParseSignatureBlock(der []byte) (*SignatureBlock, error) {
	p7, err := pkcs7.Parse(der)
	if err != nil {
		return nil, fmt.Errorf("classpath: parsing signature block: %w", err)
	}
	if len(p7.Signers) == 0 || len(p7.Certificates) == 0 {
		return nil, fmt.Errorf("classpath: signature block carries no signer certificate")
	}

	serial := p7.Signers[0].IssuerAndSerialNumber.SerialNumber
	for _, cert := range p7.Certificates {
		if cert.SerialNumber.Cmp(serial) == 0 {
			return &SignatureBlock{Signer: cert}, nil
		}
	}
	return nil, fmt.Errorf("classpath: no certificate in block matches signer serial number")
}

// VerifySignedJar checks that manifest, the raw bytes of a jar's
// META-INF/MANIFEST.MF, verifies against the PKCS#7 signature carried in
// sigBlockDER (a META-INF/*.RSA entry). Nothing in this module calls it:
// no classpath entry, ClassLoader or cmd/jvmgo flag checks signatures.
func VerifySignedJar(manifest, sigBlockDER []byte) error {
	p7, err := pkcs7.Parse(sigBlockDER)
	if err != nil {
		return fmt.Errorf("classpath: parsing signature block: %w", err)
	}
	p7.Content = manifest
	if err := p7.Verify(); err != nil {
		return fmt.Errorf("classpath: signature verification failed: %w", err)
	}
	return nil
}
