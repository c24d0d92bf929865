//go:build windows

// Embedded WGSL compute shaders for tensor and solver operations.
package webgpu

// addShader performs element-wise addition: result = a + b.
const addShader = `
@group(0) @binding(0) var<storage, read> a: array<f32>;
@group(0) @binding(1) var<storage, read> b: array<f32>;
@group(0) @binding(2) var<storage, read_write> result: array<f32>;

struct Params {
    size: u32,
}
@group(0) @binding(3) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx < params.size) {
        result[idx] = a[idx] + b[idx];
    }
}
`

// subShader performs element-wise subtraction: result = a - b.
const subShader = `
@group(0) @binding(0) var<storage, read> a: array<f32>;
@group(0) @binding(1) var<storage, read> b: array<f32>;
@group(0) @binding(2) var<storage, read_write> result: array<f32>;

struct Params {
    size: u32,
}
@group(0) @binding(3) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx < params.size) {
        result[idx] = a[idx] - b[idx];
    }
}
`

// mulShader performs element-wise multiplication: result = a * b.
const mulShader = `
@group(0) @binding(0) var<storage, read> a: array<f32>;
@group(0) @binding(1) var<storage, read> b: array<f32>;
@group(0) @binding(2) var<storage, read_write> result: array<f32>;

struct Params {
    size: u32,
}
@group(0) @binding(3) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx < params.size) {
        result[idx] = a[idx] * b[idx];
    }
}
`

// divShader performs element-wise division: result = a / b.
const divShader = `
@group(0) @binding(0) var<storage, read> a: array<f32>;
@group(0) @binding(1) var<storage, read> b: array<f32>;
@group(0) @binding(2) var<storage, read_write> result: array<f32>;

struct Params {
    size: u32,
}
@group(0) @binding(3) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx < params.size) {
        result[idx] = a[idx] / b[idx];
    }
}
`

// matmulShader computes result = a @ b for row-major 2D matrices.
// Params: n = M, m = K, k = N (one thread per output element).
const matmulShader = `
@group(0) @binding(0) var<storage, read> a: array<f32>;
@group(0) @binding(1) var<storage, read> b: array<f32>;
@group(0) @binding(2) var<storage, read_write> result: array<f32>;

struct Params {
    m: u32,
    k: u32,
    n: u32,
}
@group(0) @binding(3) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx >= params.m * params.n) {
        return;
    }
    let row = idx / params.n;
    let col = idx % params.n;
    var sum = 0.0;
    for (var i = 0u; i < params.k; i = i + 1u) {
        sum = sum + a[row * params.k + i] * b[i * params.n + col];
    }
    result[idx] = sum;
}
`

// transposeShader writes the transpose of a rows×cols row-major matrix.
const transposeShader = `
@group(0) @binding(0) var<storage, read> input: array<f32>;
@group(0) @binding(1) var<storage, read_write> output: array<f32>;

struct Params {
    rows: u32,
    cols: u32,
}
@group(0) @binding(2) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx >= params.rows * params.cols) {
        return;
    }
    let row = idx / params.cols;
    let col = idx % params.cols;
    output[col * params.rows + row] = input[idx];
}
`

// Solver shaders. A is an n×n column-major matrix, B an n×m column-major
// right-hand-side block; both are eliminated in place across one dispatch
// triple (swap, normalize, eliminate) per pivot step. Pivot selection
// happens on the host between dispatches.

// swapRowsShader interchanges rows k and p of A and B.
// One thread per column of [A | B].
const swapRowsShader = `
@group(0) @binding(0) var<storage, read_write> a: array<f32>;
@group(0) @binding(1) var<storage, read_write> b: array<f32>;

struct Params {
    n: u32,
    m: u32,
    k: u32,
    p: u32,
}
@group(0) @binding(2) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let j = global_id.x;
    let n = params.n;
    if (j < n) {
        let x = a[params.k + j * n];
        a[params.k + j * n] = a[params.p + j * n];
        a[params.p + j * n] = x;
    } else if (j < n + params.m) {
        let jb = j - n;
        let x = b[params.k + jb * n];
        b[params.k + jb * n] = b[params.p + jb * n];
        b[params.p + jb * n] = x;
    }
}
`

// normalizeRowShader divides pivot row k of [A | B] by the pivot value.
// The pivot is supplied by the host (it already read the column during
// pivot selection), so no thread depends on another thread's write.
// One thread per column j >= k of A plus the m columns of B.
const normalizeRowShader = `
@group(0) @binding(0) var<storage, read_write> a: array<f32>;
@group(0) @binding(1) var<storage, read_write> b: array<f32>;

struct Params {
    n: u32,
    m: u32,
    k: u32,
    pivot: f32,
}
@group(0) @binding(2) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let j = global_id.x;
    let n = params.n;
    let k = params.k;
    if (j < n) {
        if (j >= k) {
            a[k + j * n] = a[k + j * n] / params.pivot;
        }
    } else if (j < n + params.m) {
        let jb = j - n;
        b[k + jb * n] = b[k + jb * n] / params.pivot;
    }
}
`

// eliminateRowsShader clears column k from every row except the
// (already normalized) pivot row, updating B alongside. One thread per
// row; the pivot row is only read, never written, so the pass is
// race-free.
const eliminateRowsShader = `
@group(0) @binding(0) var<storage, read_write> a: array<f32>;
@group(0) @binding(1) var<storage, read_write> b: array<f32>;

struct Params {
    n: u32,
    m: u32,
    k: u32,
}
@group(0) @binding(2) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let i = global_id.x;
    let n = params.n;
    let k = params.k;
    if (i >= n || i == k) {
        return;
    }
    let f = a[i + k * n];
    if (f == 0.0) {
        return;
    }
    for (var j = k + 1u; j < n; j = j + 1u) {
        a[i + j * n] = a[i + j * n] - f * a[k + j * n];
    }
    for (var j = 0u; j < params.m; j = j + 1u) {
        b[i + j * n] = b[i + j * n] - f * b[k + j * n];
    }
    a[i + k * n] = 0.0;
}
`
