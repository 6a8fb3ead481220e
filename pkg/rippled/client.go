// Package rippled is a synchronous JSON command client for the rippled
// websocket API. One command goes out, one correlated reply comes back;
// there is no concurrent use of a client.
package rippled

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"rippletick/pkg/xlog"

	"github.com/gorilla/websocket"
)

var logger = xlog.GetLogger()

const (
	connectAttempts  = 5
	handshakeTimeout = 10 * time.Second
	callTimeout      = 30 * time.Second
)

// PublicURL is Ripple Labs' public websocket endpoint. Much slower than a
// local rippled instance.
const PublicURL = "wss://s1.ripple.com:51233/"

// Client holds one websocket session to a rippled instance.
type Client struct {
	URL string

	conn *websocket.Conn
	seq  int64
}

// Connect dials the rippled websocket, retrying up to 5 attempts.
func Connect(url string) (c *Client, err error) {
	dialer := websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: handshakeTimeout,
	}

	for i := 0; i < connectAttempts; i++ {
		var conn *websocket.Conn
		conn, _, err = dialer.Dial(url, nil)
		if err == nil {
			logger.Infof("connected to %s (attempt %d)", url, i+1)
			return &Client{URL: url, conn: conn}, nil
		}
		logger.Warningf("connect to %s failed (attempt %d): %s", url, i+1, err)
	}

	return nil, fmt.Errorf("connect to %s: %w", url, err)
}

// Close shuts down the websocket session.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	err := c.conn.Close()
	c.conn = nil
	return err
}

// call sends one command and decodes the correlated success reply into result.
func (c *Client) call(command string, params map[string]interface{}, result interface{}) (err error) {
	if c.conn == nil {
		return errors.New("not connected")
	}

	c.seq++
	req := map[string]interface{}{
		"id":      c.seq,
		"command": command,
	}
	for k, v := range params {
		req[k] = v
	}

	c.conn.SetWriteDeadline(time.Now().Add(callTimeout))
	if err = c.conn.WriteJSON(req); err != nil {
		return fmt.Errorf("send %s: %w", command, err)
	}

	// Skip unsolicited messages until the reply with our id arrives.
	for {
		var resp response
		c.conn.SetReadDeadline(time.Now().Add(callTimeout))
		if err = c.conn.ReadJSON(&resp); err != nil {
			return fmt.Errorf("recv %s: %w", command, err)
		}
		if resp.Type == "response" && resp.ID != c.seq {
			continue
		}
		if resp.Type != "response" {
			continue
		}
		if resp.Status != "success" {
			return fmt.Errorf("%s failed: %s", command, resp.Error)
		}
		if result == nil {
			return nil
		}
		return json.Unmarshal(resp.Result, result)
	}
}

// CurrentIndex queries the current head ledger index. One retry on
// transient failure, then gives up.
func (c *Client) CurrentIndex() (index int64, err error) {
	for i := 0; i < 2; i++ {
		var res currentIndexResult
		err = c.call("ledger_current", nil, &res)
		if err == nil {
			logger.Infof("current ledger index: %d", res.LedgerCurrentIndex)
			return res.LedgerCurrentIndex, nil
		}
		logger.Warningf("ledger_current failed (attempt %d): %s", i+1, err)
	}
	return 0, err
}

// Ledger fetches the ledger at index with its transaction hash list and
// finality flag.
func (c *Client) Ledger(index int64) (ledger *Ledger, err error) {
	var res ledgerResult
	err = c.call("ledger", map[string]interface{}{
		"ledger_index": index,
		"transactions": true,
		"expand":       false,
	}, &res)
	if err != nil {
		return nil, err
	}
	if res.Ledger == nil {
		return nil, fmt.Errorf("ledger %d missing from reply", index)
	}
	return res.Ledger, nil
}

// Tx fetches the full transaction with metadata by hash.
func (c *Client) Tx(hash string) (tx *Transaction, err error) {
	tx = &Transaction{}
	err = c.call("tx", map[string]interface{}{"transaction": hash}, tx)
	if err != nil {
		return nil, err
	}
	return tx, nil
}
