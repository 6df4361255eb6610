package coin

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	xdr "github.com/nullstyle/go-xdr/xdr3"

	"github.com/blindcash/ecash/shared"
)

func walletFilename(dir, guid string) string {
	return filepath.Join(dir, guid)
}

// Persist writes a coin to the payer's wallet dir, keyed by guid.
func Persist(dir string, c *Coin) error {
	var w bytes.Buffer
	if _, err := xdr.Marshal(&w, c); err != nil {
		return fmt.Errorf("serialization failure: %v", err)
	}

	if err := os.MkdirAll(dir, shared.OwnerReadWriteExec); err != nil {
		return fmt.Errorf("dir creation failure: %v", err)
	}

	if err := ioutil.WriteFile(walletFilename(dir, c.GUID), w.Bytes(), shared.OwnerReadWrite); err != nil {
		return fmt.Errorf("write to disk failure: %v", err)
	}

	return nil
}

// Fetch reads a coin back from the wallet dir.
func Fetch(dir, guid string) (*Coin, error) {
	data, err := ioutil.ReadFile(walletFilename(dir, guid))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, shared.ErrCoinNotExist
		}
		return nil, fmt.Errorf("read file failure: %v", err)
	}

	c := &Coin{}
	if _, err := xdr.Unmarshal(bytes.NewReader(data), c); err != nil {
		return nil, err
	}
	return c, nil
}
