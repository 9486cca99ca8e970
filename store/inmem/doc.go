// SPDX-FileCopyrightText: 2025 AquaPump Systems
// SPDX-License-Identifier: Apache-2.0

/*
Package inmem implements the store adapter contract in process memory. It
exists so an instance can come up without a hosted store behind it; nothing
survives a restart, so it is recommended for test environments only.
*/
package inmem
