// ABOUTME: Byte ring buffer between a PCM reader and a device callback
// ABOUTME: Writers block while full, readers never block and zero-fill on underrun
package output

import "sync"

// RingBuffer provides a thread-safe circular buffer of PCM bytes
type RingBuffer struct {
	buffer   []byte
	readPos  int
	writePos int
	size     int
	count    int // Number of bytes currently in buffer
	closed   bool

	mu      sync.Mutex
	notFull *sync.Cond
}

// NewRingBuffer creates a ring buffer with given capacity (in bytes)
func NewRingBuffer(capacity int) *RingBuffer {
	rb := &RingBuffer{
		buffer: make([]byte, capacity),
		size:   capacity,
	}
	rb.notFull = sync.NewCond(&rb.mu)
	return rb
}

// Write adds all of p to the ring buffer, blocking while it is full.
// It returns early with the bytes written so far if the buffer is closed.
func (rb *RingBuffer) Write(p []byte) int {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	written := 0
	for written < len(p) {
		for rb.count == rb.size && !rb.closed {
			rb.notFull.Wait()
		}
		if rb.closed {
			break
		}
		for written < len(p) && rb.count < rb.size {
			rb.buffer[rb.writePos] = p[written]
			rb.writePos = (rb.writePos + 1) % rb.size
			rb.count++
			written++
		}
	}
	return written
}

// Read retrieves bytes from the ring buffer
func (rb *RingBuffer) Read(p []byte) int {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	read := 0
	for read < len(p) && rb.count > 0 {
		p[read] = rb.buffer[rb.readPos]
		rb.readPos = (rb.readPos + 1) % rb.size
		rb.count--
		read++
	}

	// Zero-fill remaining if underrun
	for i := read; i < len(p); i++ {
		p[i] = 0
	}

	if read > 0 {
		rb.notFull.Broadcast()
	}
	return read
}

// Available returns the number of bytes available to read
func (rb *RingBuffer) Available() int {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	return rb.count
}

// Free returns the number of free slots in the buffer
func (rb *RingBuffer) Free() int {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	return rb.size - rb.count
}

// Close wakes blocked writers; further writes are dropped
func (rb *RingBuffer) Close() {
	rb.mu.Lock()
	rb.closed = true
	rb.notFull.Broadcast()
	rb.mu.Unlock()
}
