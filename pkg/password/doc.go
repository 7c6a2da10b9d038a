// Package password hashes and verifies passwords with Argon2id.
//
// Hashes are encoded as PHC strings that carry the algorithm, its cost
// parameters, the salt and the digest:
//
//	$argon2id$v=19$m=19456,t=2,p=1$<salt>$<digest>
//
// New hashes are always produced with DefaultParams (19 MiB, 2 passes,
// 1 lane, 16-byte salt, 32-byte key). These values are fixed so hashes stay
// verifiable across deployments; Verify reads the parameters from the stored
// string, so hashes created with smaller settings still verify.
//
// Hashing is CPU and memory bound. Callers serving requests should run Hash
// and Verify through a worker pool (see package async).
package password
