package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// AESCBCDecrypt decrypts ciphertext with AES in CBC mode under key and iv.
// No padding scheme is applied or removed; the ciphertext length must be a
// multiple of the AES block size. The key length selects the AES variant
// (32 bytes for AES-256).
func AESCBCDecrypt(key, iv, ciphertext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	if len(iv) != block.BlockSize() {
		return nil, fmt.Errorf("crypto: IV must be %d bytes, got %d", block.BlockSize(), len(iv))
	}
	if len(ciphertext)%block.BlockSize() != 0 {
		return nil, fmt.Errorf("crypto: ciphertext length %d is not a multiple of the block size", len(ciphertext))
	}
	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)
	return plaintext, nil
}
